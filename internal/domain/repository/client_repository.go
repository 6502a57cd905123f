package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/reservas-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
// GetByID retorna (nil, nil) si el cliente no existe.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id int64) (*entity.Client, error)
	// GetForUpdate bloquea la fila para update cuando el backend lo soporta.
	GetForUpdate(id int64) (*entity.Client, error)
	List(limit, offset int) ([]*entity.Client, error)
	Update(client *entity.Client) error
	Delete(id int64) error
	// Credit suma amount al saldo del cliente.
	Credit(id int64, amount decimal.Decimal) error
	// Debit resta amount del saldo. Re-verifica el invariante saldo >= 0 y
	// retorna domain.ErrInsufficientBalance si lo violaría.
	Debit(id int64, amount decimal.Decimal) error
}
