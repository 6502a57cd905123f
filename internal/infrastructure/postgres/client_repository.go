package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/reservas-api/internal/domain"
	"github.com/tu-usuario/reservas-api/internal/domain/entity"
	"github.com/tu-usuario/reservas-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository sobre PostgreSQL (usable con
// pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, last_name, email, balance, created_at, updated_at`

// Create persiste un cliente nuevo y asigna el ID serial.
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (name, last_name, email, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		client.Name, client.LastName, client.Email, client.Balance,
		client.CreatedAt, client.UpdatedAt,
	).Scan(&client.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Retorna (nil, nil) si no existe.
func (r *ClientRepo) GetByID(id int64) (*entity.Client, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el cliente bloqueando la fila (SELECT FOR UPDATE).
func (r *ClientRepo) GetForUpdate(id int64) (*entity.Client, error) {
	return r.get(id, true)
}

func (r *ClientRepo) get(id int64, forUpdate bool) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var c entity.Client
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.LastName, &c.Email, &c.Balance, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// List lista clientes ordenados por ID con paginación.
func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.LastName, &c.Email, &c.Balance, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza los datos de contacto del cliente. No toca el saldo.
func (r *ClientRepo) Update(client *entity.Client) error {
	query := `
		UPDATE clients SET name = $2, last_name = $3, email = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.LastName, client.Email, client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *ClientRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Credit suma amount al saldo del cliente.
func (r *ClientRepo) Credit(id int64, amount decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE clients SET balance = balance + $2, updated_at = now() WHERE id = $1`,
		id, amount,
	)
	if err != nil {
		return fmt.Errorf("credit client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Debit resta amount del saldo re-verificando el invariante saldo >= 0 en el
// mismo statement: la fila solo se actualiza si alcanza el saldo.
func (r *ClientRepo) Debit(id int64, amount decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE clients SET balance = balance - $2, updated_at = now()
		 WHERE id = $1 AND balance >= $2`,
		id, amount,
	)
	if err != nil {
		return fmt.Errorf("debit client: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		// Distinguir cliente inexistente de saldo insuficiente.
		c, err := r.GetByID(id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		return &domain.InsufficientBalanceError{
			ClientID:  id,
			Required:  amount,
			Available: c.Balance,
		}
	}
	return nil
}
