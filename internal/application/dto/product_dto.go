package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int64           `json:"stock"`
	Category  string          `json:"category"`
}

// UpdateProductRequest entrada parcial para actualizar un producto.
// El stock no se actualiza aquí: se muta solo vía el flujo de reservas.
type UpdateProductRequest struct {
	Name      *string          `json:"name"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
	Category  *string          `json:"category"`
}

// ProductResponse salida de producto.
type ProductResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     int64           `json:"stock"`
	Category  string          `json:"category,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
