package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tu-usuario/reservas-api/internal/domain"
	"github.com/tu-usuario/reservas-api/internal/domain/entity"
	"github.com/tu-usuario/reservas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	mu       sync.RWMutex
	nextID   int64
	products map[int64]*entity.Product
}

// NewProductRepository construye el store vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{nextID: 1, products: make(map[int64]*entity.Product)}
}

// Create asigna el ID secuencial y guarda el producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	product.ID = r.nextID
	r.nextID++
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

// GetByID retorna (nil, nil) si el producto no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetForUpdate en memoria equivale a GetByID; la exclusión la da el caller.
func (r *ProductRepo) GetForUpdate(id int64) (*entity.Product, error) {
	return r.GetByID(id)
}

// List retorna productos ordenados por ID con paginación.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.products))
	for id := range r.products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*entity.Product
	for i, id := range ids {
		if i < offset {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		cp := *r.products[id]
		out = append(out, &cp)
	}
	return out, nil
}

// ListByCategory filtra por categoría (case-insensitive), ordenado por ID.
func (r *ProductRepo) ListByCategory(category string) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Product
	for _, p := range r.products {
		if strings.EqualFold(p.Category, category) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update reemplaza los datos del producto existente.
func (r *ProductRepo) Update(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

// UpdateStock fija el stock absoluto del producto.
func (r *ProductRepo) UpdateStock(id int64, newStock int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = newStock
	p.UpdatedAt = time.Now()
	return nil
}

// Delete elimina el producto.
func (r *ProductRepo) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.products, id)
	return nil
}
