package reservation

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/reservas-api/internal/domain"
	"github.com/tu-usuario/reservas-api/internal/domain/entity"
	"github.com/tu-usuario/reservas-api/internal/domain/repository"
	"github.com/tu-usuario/reservas-api/pkg/logger"
)

// UseCase orquesta la creación y anulación de reservas sobre los stores de
// clientes y productos y el libro de reservas.
//
// Create es todo-o-nada desde la perspectiva del caller: las verificaciones de
// stock y saldo preceden a toda mutación, y la secuencia completa corre bajo
// el lock de entidad más la unidad atómica del TxRunner.
type UseCase struct {
	tx           TxRunner
	clients      repository.ClientRepository
	products     repository.ProductRepository
	reservations repository.ReservationRepository
	events       EventPublisher
	log          *logger.Logger
	locks        *entityLocker
}

// NewUseCase construye el caso de uso. events puede ser nil (sin publicación).
func NewUseCase(
	tx TxRunner,
	clients repository.ClientRepository,
	products repository.ProductRepository,
	reservations repository.ReservationRepository,
	events EventPublisher,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tx:           tx,
		clients:      clients,
		products:     products,
		reservations: reservations,
		events:       events,
		log:          log,
		locks:        newEntityLocker(),
	}
}

// Create crea una reserva confirmada para clientID sobre productID.
//
// Orden estricto (cada paso corta el resto al fallar):
//  1. cliente existe          -> ClientNotFoundError
//  2. producto existe         -> ProductNotFoundError
//  3. quantity <= stock       -> InsufficientStockError (sin mutación previa)
//  4. total = precio * quantity
//  5. total <= saldo          -> InsufficientBalanceError (sin mutación previa)
//  6. asignar ID, guardar reserva confirmada
//  7. descontar stock
//  8. debitar saldo
func (uc *UseCase) Create(ctx context.Context, clientID, productID, quantity int64) (*entity.Reservation, error) {
	if quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	unlock := uc.locks.lockPair(clientID, productID)
	defer unlock()

	var created *entity.Reservation
	err := uc.tx.Run(ctx, func(
		clients repository.ClientRepository,
		products repository.ProductRepository,
		reservations repository.ReservationRepository,
	) error {
		client, err := clients.GetForUpdate(clientID)
		if err != nil {
			return err
		}
		if client == nil {
			return &domain.ClientNotFoundError{ClientID: clientID}
		}

		product, err := products.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return &domain.ProductNotFoundError{ProductID: productID}
		}

		if quantity > product.Stock {
			return &domain.InsufficientStockError{
				ProductID: productID,
				Requested: quantity,
				Available: product.Stock,
			}
		}

		total := product.UnitPrice.Mul(decimal.NewFromInt(quantity))
		if client.Balance.LessThan(total) {
			return &domain.InsufficientBalanceError{
				ClientID:  clientID,
				Required:  total,
				Available: client.Balance,
			}
		}

		id, err := reservations.NextID()
		if err != nil {
			return err
		}
		r := &entity.Reservation{
			ID:          id,
			ClientID:    clientID,
			ProductID:   productID,
			Quantity:    quantity,
			TotalAmount: total,
			CreatedAt:   time.Now(),
			Status:      entity.StatusConfirmed,
		}
		if err := reservations.Create(r); err != nil {
			return err
		}
		if err := products.UpdateStock(productID, product.Stock-quantity); err != nil {
			return err
		}
		if err := clients.Debit(clientID, total); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Int64("client_id", clientID).
			Int64("product_id", productID).
			Int64("quantity", quantity).
			Msg("reserva rechazada")
		return nil, err
	}

	uc.log.Info().
		Int64("reservation_id", created.ID).
		Int64("client_id", clientID).
		Int64("product_id", productID).
		Str("total", created.TotalAmount.StringFixed(2)).
		Msg("reserva creada")

	uc.publishCreated(ctx, created)
	return created, nil
}

// Cancel anula una reserva confirmada: marca el estado terminal, reintegra el
// TotalAmount original al cliente (nunca recalculado con precios actuales) y
// repone el stock solo si el producto todavía existe. Si el producto fue
// eliminado después de la reserva, la reposición se omite en silencio.
func (uc *UseCase) Cancel(ctx context.Context, id int64) (*entity.Reservation, error) {
	// Primera lectura solo para conocer cliente y producto a bloquear.
	existing, err := uc.reservations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &domain.ReservationNotFoundError{ReservationID: id}
	}

	unlock := uc.locks.lockPair(existing.ClientID, existing.ProductID)
	defer unlock()

	var cancelled *entity.Reservation
	err = uc.tx.Run(ctx, func(
		clients repository.ClientRepository,
		products repository.ProductRepository,
		reservations repository.ReservationRepository,
	) error {
		// Re-leer bajo el lock: otra anulación pudo ganar la carrera.
		r, err := reservations.GetByID(id)
		if err != nil {
			return err
		}
		if r == nil {
			return &domain.ReservationNotFoundError{ReservationID: id}
		}
		if r.IsCancelled() {
			return &domain.AlreadyCancelledError{ReservationID: id}
		}

		if err := reservations.UpdateStatus(id, entity.StatusCancelled); err != nil {
			return err
		}
		if err := clients.Credit(r.ClientID, r.TotalAmount); err != nil {
			return err
		}

		// Reposición guardada: si el producto ya no existe, no hay dónde reponer.
		product, err := products.GetForUpdate(r.ProductID)
		if err != nil {
			return err
		}
		if product != nil {
			if err := products.UpdateStock(r.ProductID, product.Stock+r.Quantity); err != nil {
				return err
			}
		}

		r.Status = entity.StatusCancelled
		cancelled = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("reservation_id", id).
		Str("refund", cancelled.TotalAmount.StringFixed(2)).
		Msg("reserva anulada y reembolsada")

	uc.publishCancelled(ctx, cancelled)
	return cancelled, nil
}

// GetByID obtiene una reserva por ID.
func (uc *UseCase) GetByID(id int64) (*entity.Reservation, error) {
	r, err := uc.reservations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, &domain.ReservationNotFoundError{ReservationID: id}
	}
	return r, nil
}

// List retorna todas las reservas en orden de creación, anuladas incluidas.
func (uc *UseCase) List() ([]*entity.Reservation, error) {
	return uc.reservations.List()
}

// ListByClient retorna las reservas de un cliente, orden de creación preservado.
func (uc *UseCase) ListByClient(clientID int64) ([]*entity.Reservation, error) {
	return uc.reservations.ListByClient(clientID)
}

func (uc *UseCase) publishCreated(ctx context.Context, r *entity.Reservation) {
	if uc.events == nil {
		return
	}
	if err := uc.events.ReservationCreated(ctx, r); err != nil {
		uc.log.Error().Err(err).Int64("reservation_id", r.ID).Msg("publicar evento de creación")
	}
}

func (uc *UseCase) publishCancelled(ctx context.Context, r *entity.Reservation) {
	if uc.events == nil {
		return
	}
	if err := uc.events.ReservationCancelled(ctx, r); err != nil {
		uc.log.Error().Err(err).Int64("reservation_id", r.ID).Msg("publicar evento de anulación")
	}
}
