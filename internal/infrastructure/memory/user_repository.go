package memory

import (
	"strings"
	"sync"

	"github.com/tu-usuario/reservas-api/internal/domain/entity"
	"github.com/tu-usuario/reservas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]*entity.User
}

// NewUserRepository construye el store vacío.
func NewUserRepository() *UserRepo {
	return &UserRepo{nextID: 1, users: make(map[int64]*entity.User)}
}

// Create asigna el ID secuencial y guarda el usuario.
func (r *UserRepo) Create(user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

// GetByID retorna (nil, nil) si el usuario no existe.
func (r *UserRepo) GetByID(id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

// GetByEmail busca por email (case-insensitive). Retorna (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
