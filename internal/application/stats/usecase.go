package stats

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/reservas-api/internal/application/dto"
	"github.com/tu-usuario/reservas-api/internal/domain/entity"
	"github.com/tu-usuario/reservas-api/internal/domain/repository"
)

// listLimit tope de filas a recorrer para los agregados.
const listLimit = 10000

// UseCase calcula estadísticas agregadas sobre los tres stores.
type UseCase struct {
	clients      repository.ClientRepository
	products     repository.ProductRepository
	reservations repository.ReservationRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	clients repository.ClientRepository,
	products repository.ProductRepository,
	reservations repository.ReservationRepository,
) *UseCase {
	return &UseCase{clients: clients, products: products, reservations: reservations}
}

// Summary retorna conteos por entidad, reservas por estado, monto total
// comprometido (reservas confirmadas) y stock por categoría.
func (uc *UseCase) Summary() (*dto.StatsResponse, error) {
	products, err := uc.products.List(listLimit, 0)
	if err != nil {
		return nil, err
	}
	clients, err := uc.clients.List(listLimit, 0)
	if err != nil {
		return nil, err
	}
	reservations, err := uc.reservations.List()
	if err != nil {
		return nil, err
	}

	out := &dto.StatsResponse{
		TotalProducts:   int64(len(products)),
		TotalClients:    int64(len(clients)),
		CommittedAmount: decimal.Zero,
		StockByCategory: make(map[string]int64),
	}

	for _, p := range products {
		category := p.Category
		if category == "" {
			category = "sin categoría"
		}
		out.StockByCategory[category] += p.Stock
	}

	out.TotalReservations = int64(len(reservations))
	for _, r := range reservations {
		switch r.Status {
		case entity.StatusCancelled:
			out.CancelledReservations++
		default:
			out.ConfirmedReservations++
			out.CommittedAmount = out.CommittedAmount.Add(r.TotalAmount)
		}
	}
	return out, nil
}
