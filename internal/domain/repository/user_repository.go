package repository

import "github.com/tu-usuario/reservas-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (auth).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
