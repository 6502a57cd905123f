package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/reservas-api/internal/domain"
	"github.com/tu-usuario/reservas-api/internal/domain/entity"
	"github.com/tu-usuario/reservas-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación en memoria de ClientRepository (la "base simulada"
// de los demos). Thread-safe; retorna copias para que nadie mute el estado
// interno por fuera del repositorio.
type ClientRepo struct {
	mu      sync.RWMutex
	nextID  int64
	clients map[int64]*entity.Client
}

// NewClientRepository construye el store vacío.
func NewClientRepository() *ClientRepo {
	return &ClientRepo{nextID: 1, clients: make(map[int64]*entity.Client)}
}

// Create asigna el ID secuencial y guarda el cliente.
func (r *ClientRepo) Create(client *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	client.ID = r.nextID
	r.nextID++
	cp := *client
	r.clients[client.ID] = &cp
	return nil
}

// GetByID retorna (nil, nil) si el cliente no existe.
func (r *ClientRepo) GetByID(id int64) (*entity.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

// GetForUpdate en memoria equivale a GetByID; la exclusión la da el caller.
func (r *ClientRepo) GetForUpdate(id int64) (*entity.Client, error) {
	return r.GetByID(id)
}

// List retorna clientes ordenados por ID con paginación.
func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.clients))
	for id := range r.clients {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*entity.Client
	for i, id := range ids {
		if i < offset {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		cp := *r.clients[id]
		out = append(out, &cp)
	}
	return out, nil
}

// Update reemplaza los datos del cliente existente.
func (r *ClientRepo) Update(client *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[client.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *client
	r.clients[client.ID] = &cp
	return nil
}

// Delete elimina el cliente.
func (r *ClientRepo) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

// Credit suma amount al saldo.
func (r *ClientRepo) Credit(id int64, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Balance = c.Balance.Add(amount)
	c.UpdatedAt = time.Now()
	return nil
}

// Debit resta amount del saldo, re-verificando el invariante saldo >= 0.
func (r *ClientRepo) Debit(id int64, amount decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	if c.Balance.LessThan(amount) {
		return &domain.InsufficientBalanceError{
			ClientID:  id,
			Required:  amount,
			Available: c.Balance,
		}
	}
	c.Balance = c.Balance.Sub(amount)
	c.UpdatedAt = time.Now()
	return nil
}
