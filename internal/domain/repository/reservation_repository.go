package repository

import "github.com/tu-usuario/reservas-api/internal/domain/entity"

// ReservationRepository es el libro de reservas: asigna identidades, almacena
// en orden de creación y responde consultas. Las reservas nunca se borran,
// solo cambian de estado.
type ReservationRepository interface {
	// NextID retorna un entero estrictamente creciente desde 1, uno por reserva
	// creada, nunca reutilizado (ni siquiera después de una anulación).
	NextID() (int64, error)
	// Create agrega la reserva al final de la colección (orden de inserción =
	// orden de creación).
	Create(reservation *entity.Reservation) error
	// GetByID retorna (nil, nil) si la reserva no existe.
	GetByID(id int64) (*entity.Reservation, error)
	// List retorna todas las reservas en orden de inserción, anuladas incluidas.
	List() ([]*entity.Reservation, error)
	// ListByClient retorna las reservas del cliente, orden de inserción preservado.
	ListByClient(clientID int64) ([]*entity.Reservation, error)
	UpdateStatus(id int64, status entity.ReservationStatus) error
}
