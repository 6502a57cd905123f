package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReservationRequest entrada para crear una reserva.
type CreateReservationRequest struct {
	ClientID  int64 `json:"client_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// ReservationResponse salida de reserva.
type ReservationResponse struct {
	ID          int64           `json:"id"`
	ClientID    int64           `json:"client_id"`
	ProductID   int64           `json:"product_id"`
	Quantity    int64           `json:"quantity"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ReservationListResponse listado de reservas (orden de creación).
type ReservationListResponse struct {
	Items []ReservationResponse `json:"items"`
}
