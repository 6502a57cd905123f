package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock disponible.
// Stock nunca es negativo; solo se muta a través del flujo de reservas
// (UpdateStock) o de los ajustes administrativos.
type Product struct {
	ID        int64
	Name      string
	UnitPrice decimal.Decimal // precio unitario de venta, >= 0
	Stock     int64           // unidades disponibles, >= 0 siempre
	Category  string          // opcional (ej. "Informatique", "Accessoires")
	CreatedAt time.Time
	UpdatedAt time.Time
}
