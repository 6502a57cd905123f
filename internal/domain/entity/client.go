package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client representa un cliente con su saldo disponible.
// Balance debe quedar >= 0 después de cualquier operación; solo se muta
// vía Credit/Debit del repositorio.
type Client struct {
	ID        int64
	Name      string
	LastName  string
	Email     string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
