package entity

import "time"

// Roles de usuario de la API.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// User usuario de la API (autenticación y autorización).
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         string // "admin" | "operador"
	CreatedAt    time.Time
}
