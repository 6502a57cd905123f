package usecase

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tu-usuario/reservas-api/internal/application/dto"
	"github.com/tu-usuario/reservas-api/internal/domain"
	"github.com/tu-usuario/reservas-api/internal/domain/entity"
	"github.com/tu-usuario/reservas-api/internal/domain/repository"
)

// searchLimit tope de filas a examinar en búsquedas por nombre.
const searchLimit = 1000

// ClientUseCase casos de uso CRUD para clientes. El saldo solo se muta vía
// Recharge y el flujo de reservas.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un cliente. El saldo inicial no puede ser negativo.
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Balance.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	client := &entity.Client{
		Name:      in.Name,
		LastName:  in.LastName,
		Email:     in.Email,
		Balance:   in.Balance,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID. Retorna (nil, nil) si no existe.
func (uc *ClientUseCase) GetByID(id int64) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	return toClientResponse(client), nil
}

// List lista clientes con paginación.
func (uc *ClientUseCase) List(limit, offset int) (*dto.ClientListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza los datos de contacto del cliente. No toca el saldo.
func (uc *ClientUseCase) Update(id int64, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	if in.Name != nil {
		client.Name = *in.Name
	}
	if in.LastName != nil {
		client.LastName = *in.LastName
	}
	if in.Email != nil {
		client.Email = *in.Email
	}
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete elimina un cliente por ID.
func (uc *ClientUseCase) Delete(id int64) error {
	return uc.repo.Delete(id)
}

// Recharge suma amount (positivo) al saldo del cliente y retorna el cliente
// actualizado. Retorna (nil, nil) si el cliente no existe.
func (uc *ClientUseCase) Recharge(id int64, amount decimal.Decimal) (*dto.ClientResponse, error) {
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, nil
	}
	if err := uc.repo.Credit(id, amount); err != nil {
		return nil, err
	}
	client, err = uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Search busca clientes por nombre o apellido, insensible a mayúsculas y
// acentos ("José" matchea "jose").
func (uc *ClientUseCase) Search(query string) ([]dto.ClientResponse, error) {
	q := normalize(query)
	if q == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(searchLimit, 0)
	if err != nil {
		return nil, err
	}
	var items []dto.ClientResponse
	for _, c := range list {
		if strings.Contains(normalize(c.Name), q) || strings.Contains(normalize(c.LastName), q) {
			items = append(items, *toClientResponse(c))
		}
	}
	return items, nil
}

// normalize pasa a minúsculas y elimina diacríticos (NFD + remover marcas).
func normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		LastName:  c.LastName,
		Email:     c.Email,
		Balance:   c.Balance,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
