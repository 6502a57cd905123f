package reservation_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appreservation "github.com/tu-usuario/reservas-api/internal/application/reservation"
	"github.com/tu-usuario/reservas-api/internal/domain"
	"github.com/tu-usuario/reservas-api/internal/domain/entity"
	"github.com/tu-usuario/reservas-api/internal/infrastructure/memory"
	"github.com/tu-usuario/reservas-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *appreservation.UseCase
	clients  *memory.ClientRepo
	products *memory.ProductRepo
}

// newFixture construye el caso de uso sobre stores en memoria, sin publisher.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	clients := memory.NewClientRepository()
	products := memory.NewProductRepository()
	reservations := memory.NewReservationRepository()
	tx := memory.NewTxRunner(clients, products, reservations)
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return &fixture{
		uc:       appreservation.NewUseCase(tx, clients, products, reservations, nil, log),
		clients:  clients,
		products: products,
	}
}

// seedClient crea un cliente con el saldo indicado y devuelve su ID.
func (f *fixture) seedClient(t *testing.T, balance int64) int64 {
	t.Helper()
	now := time.Now()
	c := &entity.Client{
		Name: "Jean", LastName: "Dujardin", Email: "jean@test.com",
		Balance: decimal.NewFromInt(balance), CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.clients.Create(c))
	return c.ID
}

// seedProduct crea un producto con precio y stock indicados y devuelve su ID.
func (f *fixture) seedProduct(t *testing.T, price, stock int64) int64 {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		Name: "Portátil", UnitPrice: decimal.NewFromInt(price), Stock: stock,
		Category: "Informática", CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.products.Create(p))
	return p.ID
}

func (f *fixture) clientBalance(t *testing.T, id int64) decimal.Decimal {
	t.Helper()
	c, err := f.clients.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c.Balance
}

func (f *fixture) productStock(t *testing.T, id int64) int64 {
	t.Helper()
	p, err := f.products.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación de reservas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_FlujoCompleto(t *testing.T) {
	f := newFixture(t)
	clientID := f.seedClient(t, 100)
	productID := f.seedProduct(t, 30, 5)

	r, err := f.uc.Create(context.Background(), clientID, productID, 3)
	require.NoError(t, err, "la reserva debe crearse: hay stock y saldo suficientes")

	assert.Equal(t, int64(1), r.ID, "la primera reserva debe llevar el ID 1")
	assert.Equal(t, entity.StatusConfirmed, r.Status, "la reserva nueva debe quedar confirmada")
	assert.True(t, r.TotalAmount.Equal(decimal.NewFromInt(90)),
		"el total debe ser precio*cantidad = 90, fue %s", r.TotalAmount)

	assert.True(t, f.clientBalance(t, clientID).Equal(decimal.NewFromInt(10)),
		"el saldo debe quedar en 100-90 = 10")
	assert.EqualValues(t, 2, f.productStock(t, productID), "el stock debe quedar en 5-3 = 2")
}

func TestCreate_StockInsuficienteNoMutaNada(t *testing.T) {
	f := newFixture(t)
	clientID := f.seedClient(t, 100)
	productID := f.seedProduct(t, 30, 5)

	_, err := f.uc.Create(context.Background(), clientID, productID, 3)
	require.NoError(t, err)

	// Quedan 2 unidades: pedir 3 debe fallar sin tocar stock ni saldo.
	_, err = f.uc.Create(context.Background(), clientID, productID, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "debe fallar por stock insuficiente")

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.EqualValues(t, 3, stockErr.Requested, "el error debe informar la cantidad pedida")
	assert.EqualValues(t, 2, stockErr.Available, "el error debe informar el stock disponible")

	assert.EqualValues(t, 2, f.productStock(t, productID), "el stock no debe cambiar tras el rechazo")
	assert.True(t, f.clientBalance(t, clientID).Equal(decimal.NewFromInt(10)),
		"el saldo no debe cambiar tras el rechazo")
}

func TestCreate_SaldoInsuficienteNoMutaNada(t *testing.T) {
	f := newFixture(t)
	clientID := f.seedClient(t, 20)
	productID := f.seedProduct(t, 30, 5)

	_, err := f.uc.Create(context.Background(), clientID, productID, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance, "debe fallar por saldo insuficiente")

	var balErr *domain.InsufficientBalanceError
	require.ErrorAs(t, err, &balErr)
	assert.True(t, balErr.Required.Equal(decimal.NewFromInt(30)), "el error debe informar el total requerido")
	assert.True(t, balErr.Available.Equal(decimal.NewFromInt(20)), "el error debe informar el saldo disponible")

	assert.EqualValues(t, 5, f.productStock(t, productID), "el stock no debe cambiar tras el rechazo")
	assert.True(t, f.clientBalance(t, clientID).Equal(decimal.NewFromInt(20)),
		"el saldo no debe cambiar tras el rechazo")
}

// El chequeo de stock precede al de saldo: si fallan ambos, gana stock.
func TestCreate_StockSeVerificaAntesQueSaldo(t *testing.T) {
	f := newFixture(t)
	clientID := f.seedClient(t, 0)
	productID := f.seedProduct(t, 30, 0)

	_, err := f.uc.Create(context.Background(), clientID, productID, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"con stock y saldo insuficientes debe reportarse primero el stock")
	assert.NotErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestCreate_SaldoExactoAlcanza(t *testing.T) {
	f := newFixture(t)
	clientID := f.seedClient(t, 90)
	productID := f.seedProduct(t, 30, 5)

	r, err := f.uc.Create(context.Background(), clientID, productID, 3)
	require.NoError(t, err, "saldo exactamente igual al total debe alcanzar")
	assert.True(t, f.clientBalance(t, clientID).IsZero(), "el saldo debe quedar en cero")
	assert.Equal(t, entity.StatusConfirmed, r.Status)
}

func TestCreate_ClienteInexistente(t *testing.T) {
	f := newFixture(t)
	productID := f.seedProduct(t, 30, 5)

	_, err := f.uc.Create(context.Background(), 999, productID, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
	assert.EqualValues(t, 5, f.productStock(t, productID), "el stock no debe cambiar")
}

func TestCreate_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	clientID := f.seedClient(t, 100)

	_, err := f.uc.Create(context.Background(), clientID, 999, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.True(t, f.clientBalance(t, clientID).Equal(decimal.NewFromInt(100)),
		"el saldo no debe cambiar")
}

func TestCreate_CantidadInvalida(t *testing.T) {
	f := newFixture(t)
	clientID := f.seedClient(t, 100)
	productID := f.seedProduct(t, 30, 5)

	for _, qty := range []int64{0, -1} {
		_, err := f.uc.Create(context.Background(), clientID, productID, qty)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d debe rechazarse", qty)
	}
}

func TestCreate_IDsCrecientesDesdeUno(t *testing.T) {
	f := newFixture(t)
	clientID := f.seedClient(t, 1000)
	productID := f.seedProduct(t, 10, 100)

	for i := int64(1); i <= 3; i++ {
		r, err := f.uc.Create(context.Background(), clientID, productID, 1)
		require.NoError(t, err)
		assert.Equal(t, i, r.ID, "los IDs deben ser crecientes y consecutivos")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Anulación de reservas
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_ReintegraSaldoYStock(t *testing.T) {
	f := newFixture(t)
	clientID := f.seedClient(t, 100)
	productID := f.seedProduct(t, 30, 5)

	r, err := f.uc.Create(context.Background(), clientID, productID, 3)
	require.NoError(t, err)

	cancelled, err := f.uc.Cancel(context.Background(), r.ID)
	require.NoError(t, err, "la anulación de una reserva confirmada debe funcionar")

	assert.Equal(t, entity.StatusCancelled, cancelled.Status, "la reserva debe quedar anulada")
	assert.True(t, f.clientBalance(t, clientID).Equal(decimal.NewFromInt(100)),
		"el saldo debe restaurarse al valor original")
	assert.EqualValues(t, 5, f.productStock(t, productID), "el stock debe restaurarse al valor original")
}

func TestCancel_DobleAnulacionFalla(t *testing.T) {
	f := newFixture(t)
	clientID := f.seedClient(t, 100)
	productID := f.seedProduct(t, 30, 5)

	r, err := f.uc.Create(context.Background(), clientID, productID, 2)
	require.NoError(t, err)

	_, err = f.uc.Cancel(context.Background(), r.ID)
	require.NoError(t, err)

	_, err = f.uc.Cancel(context.Background(), r.ID)
	require.Error(t, err, "anular dos veces debe fallar")
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)

	// Sin doble reembolso ni doble reposición.
	assert.True(t, f.clientBalance(t, clientID).Equal(decimal.NewFromInt(100)),
		"el reembolso no debe aplicarse dos veces")
	assert.EqualValues(t, 5, f.productStock(t, productID), "la reposición no debe aplicarse dos veces")
}

func TestCancel_ReservaInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Cancel(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}

// El reembolso usa el TotalAmount congelado en la reserva, no el precio actual.
func TestCancel_ReembolsaMontoOriginalAunqueElPrecioCambie(t *testing.T) {
	f := newFixture(t)
	clientID := f.seedClient(t, 100)
	productID := f.seedProduct(t, 30, 5)

	r, err := f.uc.Create(context.Background(), clientID, productID, 2)
	require.NoError(t, err)

	// Subir el precio después de reservar.
	p, err := f.products.GetByID(productID)
	require.NoError(t, err)
	p.UnitPrice = decimal.NewFromInt(500)
	require.NoError(t, f.products.Update(p))

	_, err = f.uc.Cancel(context.Background(), r.ID)
	require.NoError(t, err)
	assert.True(t, f.clientBalance(t, clientID).Equal(decimal.NewFromInt(100)),
		"debe reintegrarse el total original (60), no el precio actual")
}

// Si el producto fue eliminado después de reservar, la anulación reembolsa
// igual y omite la reposición en silencio.
func TestCancel_ProductoEliminadoOmiteReposicion(t *testing.T) {
	f := newFixture(t)
	clientID := f.seedClient(t, 100)
	productID := f.seedProduct(t, 30, 5)

	r, err := f.uc.Create(context.Background(), clientID, productID, 2)
	require.NoError(t, err)

	require.NoError(t, f.products.Delete(productID))

	cancelled, err := f.uc.Cancel(context.Background(), r.ID)
	require.NoError(t, err, "la anulación no debe fallar aunque el producto ya no exista")
	assert.Equal(t, entity.StatusCancelled, cancelled.Status)
	assert.True(t, f.clientBalance(t, clientID).Equal(decimal.NewFromInt(100)),
		"el reembolso debe aplicarse aunque no haya reposición")

	p, err := f.products.GetByID(productID)
	require.NoError(t, err)
	assert.Nil(t, p, "el producto eliminado no debe reaparecer")
}

// Los IDs nunca se reutilizan: una reserva anulada conserva el suyo y la
// siguiente toma el consecutivo.
func TestCancel_NoLiberaElID(t *testing.T) {
	f := newFixture(t)
	clientID := f.seedClient(t, 1000)
	productID := f.seedProduct(t, 10, 100)

	r1, err := f.uc.Create(context.Background(), clientID, productID, 1)
	require.NoError(t, err)
	_, err = f.uc.Cancel(context.Background(), r1.ID)
	require.NoError(t, err)

	r2, err := f.uc.Create(context.Background(), clientID, productID, 1)
	require.NoError(t, err)
	assert.Equal(t, r1.ID+1, r2.ID, "el ID de una reserva anulada no debe reutilizarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestList_IncluyeAnuladasEnOrdenDeCreacion(t *testing.T) {
	f := newFixture(t)
	clientID := f.seedClient(t, 1000)
	otherID := f.seedClient(t, 1000)
	productID := f.seedProduct(t, 10, 100)

	r1, err := f.uc.Create(context.Background(), clientID, productID, 1)
	require.NoError(t, err)
	r2, err := f.uc.Create(context.Background(), otherID, productID, 2)
	require.NoError(t, err)
	_, err = f.uc.Cancel(context.Background(), r1.ID)
	require.NoError(t, err)

	list, err := f.uc.List()
	require.NoError(t, err)
	require.Len(t, list, 2, "el listado debe incluir las reservas anuladas")
	assert.Equal(t, r1.ID, list[0].ID, "el orden de creación debe preservarse")
	assert.Equal(t, entity.StatusCancelled, list[0].Status)
	assert.Equal(t, r2.ID, list[1].ID)

	byClient, err := f.uc.ListByClient(clientID)
	require.NoError(t, err)
	require.Len(t, byClient, 1, "el filtro por cliente debe excluir las reservas ajenas")
	assert.Equal(t, r1.ID, byClient[0].ID)
}

func TestGetByID_Inexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.GetByID(7)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Con 20 goroutines compitiendo por 10 unidades, deben confirmarse exactamente
// 10 reservas y el stock debe terminar en cero, sin sobreventa.
func TestCreate_ConcurrenciaSinSobreventa(t *testing.T) {
	f := newFixture(t)
	clientID := f.seedClient(t, 10000)
	productID := f.seedProduct(t, 10, 10)

	const workers = 20
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Create(context.Background(), clientID, productID, 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, rejected int
	for err := range results {
		switch {
		case err == nil:
			ok++
		default:
			assert.ErrorIs(t, err, domain.ErrInsufficientStock,
				"los rechazos concurrentes deben ser por stock insuficiente")
			rejected++
		}
	}

	assert.Equal(t, 10, ok, "deben confirmarse exactamente tantas reservas como stock había")
	assert.Equal(t, 10, rejected)
	assert.EqualValues(t, 0, f.productStock(t, productID), "el stock debe terminar en cero, nunca negativo")
	assert.True(t, f.clientBalance(t, clientID).Equal(decimal.NewFromInt(10000-100)),
		"el saldo debe reflejar solo las reservas confirmadas")
}
