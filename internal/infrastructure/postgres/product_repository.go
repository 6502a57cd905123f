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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con
// pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, unit_price, stock, category, created_at, updated_at`

// Create persiste un producto nuevo y asigna el ID serial.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (name, unit_price, stock, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		product.Name, product.UnitPrice, product.Stock, product.Category,
		product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Retorna (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene el producto bloqueando la fila (SELECT FOR UPDATE).
func (r *ProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.get(id, true)
}

func (r *ProductRepo) get(id int64, forUpdate bool) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.UnitPrice, &p.Stock, &p.Category, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List lista productos ordenados por ID con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListByCategory filtra por categoría (case-insensitive), ordenado por ID.
func (r *ProductRepo) ListByCategory(category string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE lower(category) = lower($1) ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, category)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.Stock, &p.Category, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza nombre, precio y categoría. No permite modificar el stock
// (se maneja vía reservas).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, unit_price = $3, category = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.UnitPrice, product.Category, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock fija el stock absoluto del producto.
func (r *ProductRepo) UpdateStock(id int64, newStock int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		id, newStock,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
