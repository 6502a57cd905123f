package usecase

import (
	"time"

	"github.com/tu-usuario/reservas-api/internal/application/dto"
	"github.com/tu-usuario/reservas-api/internal/domain"
	"github.com/tu-usuario/reservas-api/internal/domain/entity"
	"github.com/tu-usuario/reservas-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo se muta vía
// el flujo de reservas.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. Precio y stock iniciales no pueden ser negativos.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		Name:      in.Name,
		UnitPrice: in.UnitPrice,
		Stock:     in.Stock,
		Category:  in.Category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Retorna (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación, o filtra por categoría si category
// no está vacío.
func (uc *ProductUseCase) List(limit, offset int, category string) (*dto.ProductListResponse, error) {
	var (
		list []*entity.Product
		err  error
	)
	if category != "" {
		list, err = uc.repo.ListByCategory(category)
	} else {
		list, err = uc.repo.List(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un producto. No permite modificar el stock (se maneja vía
// reservas). Retorna (nil, nil) si no existe.
func (uc *ProductUseCase) Update(id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.UnitPrice = *in.UnitPrice
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto por ID. Las reservas existentes sobre el producto
// no se tocan: al anularlas, la reposición de stock se omite.
func (uc *ProductUseCase) Delete(id int64) error {
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: p.UnitPrice,
		Stock:     p.Stock,
		Category:  p.Category,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
