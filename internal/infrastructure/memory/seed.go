package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/reservas-api/internal/domain/entity"
)

// Seed carga los datos de ejemplo de los demos en los stores en memoria.
// Solo tiene sentido en development; en production el driver es postgres.
func Seed(clients *ClientRepo, products *ProductRepo) error {
	now := time.Now()

	seedClients := []*entity.Client{
		{Name: "Jean", LastName: "Dujardin", Email: "jean.dujardin@gmail.com", Balance: decimal.NewFromInt(120), CreatedAt: now, UpdatedAt: now},
		{Name: "Thomas", LastName: "Dupont", Email: "thomas.dupont@hotmail.com", Balance: decimal.NewFromInt(42), CreatedAt: now, UpdatedAt: now},
	}
	for _, c := range seedClients {
		if err := clients.Create(c); err != nil {
			return err
		}
	}

	seedProducts := []*entity.Product{
		{Name: "Portátil Dell", UnitPrice: decimal.RequireFromString("899.99"), Stock: 15, Category: "Informática", CreatedAt: now, UpdatedAt: now},
		{Name: "Mouse inalámbrico Logitech", UnitPrice: decimal.RequireFromString("49.99"), Stock: 50, Category: "Accesorios", CreatedAt: now, UpdatedAt: now},
		{Name: "Teclado mecánico RGB", UnitPrice: decimal.RequireFromString("129.99"), Stock: 25, Category: "Accesorios", CreatedAt: now, UpdatedAt: now},
	}
	for _, p := range seedProducts {
		if err := products.Create(p); err != nil {
			return err
		}
	}
	return nil
}
