package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento publicados en el topic de reservas.
const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationCancelled = "reservation.cancelled"
)

// ReservationEvent mensaje publicado al crear o anular una reserva.
type ReservationEvent struct {
	EventID       string          `json:"event_id"`
	Type          string          `json:"type"`
	ReservationID int64           `json:"reservation_id"`
	ClientID      int64           `json:"client_id"`
	ProductID     int64           `json:"product_id"`
	Quantity      int64           `json:"quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	Timestamp     time.Time       `json:"timestamp"`
}
