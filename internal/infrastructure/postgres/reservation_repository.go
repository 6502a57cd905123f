package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/reservas-api/internal/domain"
	"github.com/tu-usuario/reservas-api/internal/domain/entity"
	"github.com/tu-usuario/reservas-api/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo libro de reservas sobre PostgreSQL. Los IDs salen de la
// secuencia reservations_id_seq: crecientes, nunca reutilizados (nextval no
// retrocede ni con rollback, lo cual preserva el invariante).
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

const reservationColumns = `id, client_id, product_id, quantity, total_amount, status, created_at`

// NextID obtiene el siguiente ID de la secuencia.
func (r *ReservationRepo) NextID() (int64, error) {
	var id int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('reservations_id_seq')`).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("next reservation id: %w", err)
	}
	return id, nil
}

// Create persiste la reserva con el ID ya asignado.
func (r *ReservationRepo) Create(reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, client_id, product_id, quantity, total_amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		reservation.ID, reservation.ClientID, reservation.ProductID,
		reservation.Quantity, reservation.TotalAmount, string(reservation.Status),
		reservation.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

// GetByID obtiene una reserva por ID. Retorna (nil, nil) si no existe.
func (r *ReservationRepo) GetByID(id int64) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	var res entity.Reservation
	var status string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&res.ID, &res.ClientID, &res.ProductID, &res.Quantity,
		&res.TotalAmount, &status, &res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	res.Status = entity.ReservationStatus(status)
	return &res, nil
}

// List retorna todas las reservas en orden de creación, anuladas incluidas.
func (r *ReservationRepo) List() ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations ORDER BY id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

// ListByClient retorna las reservas del cliente en orden de creación.
func (r *ReservationRepo) ListByClient(clientID int64) ([]*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE client_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list reservations by client: %w", err)
	}
	defer rows.Close()
	return scanReservations(rows)
}

func scanReservations(rows pgx.Rows) ([]*entity.Reservation, error) {
	var list []*entity.Reservation
	for rows.Next() {
		var res entity.Reservation
		var status string
		if err := rows.Scan(&res.ID, &res.ClientID, &res.ProductID, &res.Quantity,
			&res.TotalAmount, &status, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		res.Status = entity.ReservationStatus(status)
		list = append(list, &res)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la reserva.
func (r *ReservationRepo) UpdateStatus(id int64, status entity.ReservationStatus) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE reservations SET status = $2 WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
