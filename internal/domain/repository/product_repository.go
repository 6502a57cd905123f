package repository

import "github.com/tu-usuario/reservas-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID retorna (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE) cuando el
	// backend lo soporta; en memoria equivale a GetByID.
	GetForUpdate(id int64) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	ListByCategory(category string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock fija el stock absoluto del producto (usado por el flujo de reservas).
	UpdateStock(id int64, newStock int64) error
	Delete(id int64) error
}
