package memory

import (
	"context"

	"github.com/tu-usuario/reservas-api/internal/application/reservation"
	"github.com/tu-usuario/reservas-api/internal/domain/repository"
)

var _ reservation.TxRunner = (*TxRunner)(nil)

// TxRunner pass-through sobre los stores en memoria: no hay transacciones que
// abrir, la atomicidad la garantiza el lock por entidad del caso de uso.
type TxRunner struct {
	clients      repository.ClientRepository
	products     repository.ProductRepository
	reservations repository.ReservationRepository
}

// NewTxRunner construye el runner con los stores en memoria.
func NewTxRunner(
	clients repository.ClientRepository,
	products repository.ProductRepository,
	reservations repository.ReservationRepository,
) *TxRunner {
	return &TxRunner{clients: clients, products: products, reservations: reservations}
}

// Run ejecuta fn directamente sobre los stores.
func (r *TxRunner) Run(_ context.Context, fn func(
	clients repository.ClientRepository,
	products repository.ProductRepository,
	reservations repository.ReservationRepository,
) error) error {
	return fn(r.clients, r.products, r.reservations)
}
