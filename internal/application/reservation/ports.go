package reservation

import (
	"context"

	"github.com/tu-usuario/reservas-api/internal/domain/entity"
	"github.com/tu-usuario/reservas-api/internal/domain/repository"
)

// TxRunner ejecuta fn con repositorios atados a una unidad atómica de trabajo.
// La implementación postgres abre una transacción (Commit/Rollback); la de
// memoria es un pass-through sobre los stores en memoria.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		clients repository.ClientRepository,
		products repository.ProductRepository,
		reservations repository.ReservationRepository,
	) error) error
}

// EventPublisher publica eventos de dominio tras una mutación exitosa.
// La publicación es best-effort: un fallo se registra pero nunca revierte
// ni falla la operación.
type EventPublisher interface {
	ReservationCreated(ctx context.Context, r *entity.Reservation) error
	ReservationCancelled(ctx context.Context, r *entity.Reservation) error
}
