package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas). Todos representan
// violaciones de reglas de negocio, no fallas transitorias: no se reintenta.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrClientNotFound      = errors.New("cliente no encontrado")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrReservationNotFound = errors.New("reserva no encontrada")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInsufficientBalance = errors.New("saldo insuficiente")
	ErrAlreadyCancelled    = errors.New("reserva ya anulada")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrUnauthorized        = errors.New("no autorizado")
)

// ClientNotFoundError indica que el cliente referenciado no existe.
type ClientNotFoundError struct {
	ClientID int64
}

func (e *ClientNotFoundError) Error() string {
	return fmt.Sprintf("cliente #%d no encontrado", e.ClientID)
}

func (e *ClientNotFoundError) Unwrap() error { return ErrClientNotFound }

// ProductNotFoundError indica que el producto referenciado no existe.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("producto #%d no encontrado", e.ProductID)
}

func (e *ProductNotFoundError) Unwrap() error { return ErrProductNotFound }

// ReservationNotFoundError indica que la reserva no existe.
type ReservationNotFoundError struct {
	ReservationID int64
}

func (e *ReservationNotFoundError) Error() string {
	return fmt.Sprintf("reserva #%d no encontrada", e.ReservationID)
}

func (e *ReservationNotFoundError) Unwrap() error { return ErrReservationNotFound }

// InsufficientStockError indica que la cantidad pedida supera el stock
// disponible al momento de la verificación. Ninguna mutación la precede.
type InsufficientStockError struct {
	ProductID int64
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto #%d (pedido: %d, disponible: %d)",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// InsufficientBalanceError indica que el cliente no puede pagar el total calculado.
type InsufficientBalanceError struct {
	ClientID  int64
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("saldo insuficiente para cliente #%d (requerido: %s, disponible: %s)",
		e.ClientID, e.Required.StringFixed(2), e.Available.StringFixed(2))
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }

// AlreadyCancelledError indica un intento de anular una reserva que ya está en
// estado terminal. La anulación no es idempotente: el segundo intento es error.
type AlreadyCancelledError struct {
	ReservationID int64
}

func (e *AlreadyCancelledError) Error() string {
	return fmt.Sprintf("reserva #%d ya anulada", e.ReservationID)
}

func (e *AlreadyCancelledError) Unwrap() error { return ErrAlreadyCancelled }
