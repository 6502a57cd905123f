package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus estado de una reserva.
// Máquina de estados: confirmed es el estado inicial; la única transición
// legal es confirmed -> cancelled (disparada por la anulación) y es
// irreversible. Una reserva nunca se borra, solo se marca anulada.
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation compromete una cantidad de un producto para un cliente con un
// cargo total fijo hasta su anulación.
// TotalAmount = UnitPrice * Quantity al momento de creación; inmutable después
// (no se recalcula si el precio del producto cambia).
type Reservation struct {
	ID          int64 // monotónico desde 1, nunca reutilizado
	ClientID    int64
	ProductID   int64
	Quantity    int64 // entero positivo
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	Status      ReservationStatus
}

// IsCancelled indica si la reserva está en estado terminal.
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}
