package memory

import (
	"sync"

	"github.com/tu-usuario/reservas-api/internal/domain"
	"github.com/tu-usuario/reservas-api/internal/domain/entity"
	"github.com/tu-usuario/reservas-api/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo libro de reservas en memoria: slice en orden de inserción
// (orden de creación) más índice por ID. Las reservas nunca se eliminan.
type ReservationRepo struct {
	mu           sync.RWMutex
	nextID       int64
	reservations []*entity.Reservation
	byID         map[int64]*entity.Reservation
}

// NewReservationRepository construye el libro vacío. Los IDs comienzan en 1.
func NewReservationRepository() *ReservationRepo {
	return &ReservationRepo{
		nextID: 1,
		byID:   make(map[int64]*entity.Reservation),
	}
}

// NextID retorna el siguiente ID, estrictamente creciente y nunca reutilizado.
func (r *ReservationRepo) NextID() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	return id, nil
}

// Create agrega la reserva al final de la colección.
func (r *ReservationRepo) Create(reservation *entity.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[reservation.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *reservation
	r.reservations = append(r.reservations, &cp)
	r.byID[cp.ID] = &cp
	return nil
}

// GetByID retorna (nil, nil) si la reserva no existe.
func (r *ReservationRepo) GetByID(id int64) (*entity.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

// List retorna todas las reservas en orden de inserción, anuladas incluidas.
func (r *ReservationRepo) List() ([]*entity.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.Reservation, 0, len(r.reservations))
	for _, res := range r.reservations {
		cp := *res
		out = append(out, &cp)
	}
	return out, nil
}

// ListByClient retorna las reservas del cliente, orden de inserción preservado.
func (r *ReservationRepo) ListByClient(clientID int64) ([]*entity.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Reservation
	for _, res := range r.reservations {
		if res.ClientID == clientID {
			cp := *res
			out = append(out, &cp)
		}
	}
	return out, nil
}

// UpdateStatus cambia el estado de la reserva.
func (r *ReservationRepo) UpdateStatus(id int64, status entity.ReservationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	res.Status = status
	return nil
}
