package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name     string          `json:"name"`
	LastName string          `json:"last_name"`
	Email    string          `json:"email"`
	Balance  decimal.Decimal `json:"balance"`
}

// UpdateClientRequest entrada parcial para actualizar un cliente.
// El saldo no se toca aquí: se muta solo vía recargas y reservas.
type UpdateClientRequest struct {
	Name     *string `json:"name"`
	LastName *string `json:"last_name"`
	Email    *string `json:"email"`
}

// RechargeRequest entrada para recargar saldo.
type RechargeRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ClientResponse salida de cliente.
type ClientResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	LastName  string          `json:"last_name"`
	Email     string          `json:"email"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ClientListResponse listado paginado de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
