package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/reservas-api/internal/application/auth"
	"github.com/tu-usuario/reservas-api/internal/application/dto"
	appreservation "github.com/tu-usuario/reservas-api/internal/application/reservation"
	"github.com/tu-usuario/reservas-api/internal/application/stats"
	"github.com/tu-usuario/reservas-api/internal/application/usecase"
	"github.com/tu-usuario/reservas-api/internal/domain/entity"
	"github.com/tu-usuario/reservas-api/internal/infrastructure/memory"
	apphttp "github.com/tu-usuario/reservas-api/internal/interfaces/http"
	"github.com/tu-usuario/reservas-api/pkg/logger"
)

// buildAPIApp levanta la API completa sobre stores en memoria con un cliente
// (saldo 100) y un producto (precio 30, stock 5) precargados.
func buildAPIApp(t *testing.T) *fiber.App {
	t.Helper()

	clients := memory.NewClientRepository()
	products := memory.NewProductRepository()
	reservations := memory.NewReservationRepository()
	users := memory.NewUserRepository()
	tx := memory.NewTxRunner(clients, products, reservations)
	log := logger.New(logger.Config{Env: "test", Level: "error"})

	now := time.Now()
	require.NoError(t, clients.Create(&entity.Client{
		Name: "Jean", LastName: "Dujardin", Email: "jean@test.com",
		Balance: decimal.NewFromInt(100), CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, products.Create(&entity.Product{
		Name: "Portátil", UnitPrice: decimal.NewFromInt(30), Stock: 5,
		Category: "Informática", CreatedAt: now, UpdatedAt: now,
	}))

	reservationUC := appreservation.NewUseCase(tx, clients, products, reservations, nil, log)
	authUC := auth.NewUseCase(users, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ClientUC:      usecase.NewClientUseCase(clients),
		ProductUC:     usecase.NewProductUseCase(products),
		ReservationUC: reservationUC,
		StatsUC:       stats.NewUseCase(clients, products, reservations),
		AuthUC:        authUC,
		ClientRepo:    clients,
		ProductRepo:   products,
		JWTSecret:     testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "operador"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeReservation(t *testing.T, resp *http.Response) dto.ReservationResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.ReservationResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	defer resp.Body.Close()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/reservations
// ──────────────────────────────────────────────────────────────────────────────

func TestReservationsPost_Creada201(t *testing.T) {
	app := buildAPIApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/reservations", dto.CreateReservationRequest{
		ClientID: 1, ProductID: 1, Quantity: 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "una reserva válida debe devolver 201")

	out := decodeReservation(t, resp)
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "confirmed", out.Status)
	assert.True(t, out.TotalAmount.Equal(decimal.NewFromInt(90)))
}

func TestReservationsPost_StockInsuficiente400(t *testing.T) {
	app := buildAPIApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/reservations", dto.CreateReservationRequest{
		ClientID: 1, ProductID: 1, Quantity: 6,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeError(t, resp).Code)
}

func TestReservationsPost_SaldoInsuficiente400(t *testing.T) {
	app := buildAPIApp(t)

	// 4 unidades a 30 = 120 > saldo 100, pero el stock alcanza.
	resp := doJSON(t, app, http.MethodPost, "/api/reservations", dto.CreateReservationRequest{
		ClientID: 1, ProductID: 1, Quantity: 4,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_BALANCE", decodeError(t, resp).Code)
}

func TestReservationsPost_ClienteInexistente404(t *testing.T) {
	app := buildAPIApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/reservations", dto.CreateReservationRequest{
		ClientID: 99, ProductID: 1, Quantity: 1,
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

func TestReservationsPost_SinToken401(t *testing.T) {
	app := buildAPIApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/reservations", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"las mutaciones requieren Bearer Token")
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/reservations/:id/cancel
// ──────────────────────────────────────────────────────────────────────────────

func TestReservationsCancel_FlujoCompleto(t *testing.T) {
	app := buildAPIApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/reservations", dto.CreateReservationRequest{
		ClientID: 1, ProductID: 1, Quantity: 3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeReservation(t, resp)

	path := fmt.Sprintf("/api/reservations/%d/cancel", created.ID)
	resp = doJSON(t, app, http.MethodPost, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, "la primera anulación debe funcionar")
	assert.Equal(t, "cancelled", decodeReservation(t, resp).Status)

	resp = doJSON(t, app, http.MethodPost, path, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, "la segunda anulación debe fallar")
	assert.Equal(t, "ALREADY_CANCELLED", decodeError(t, resp).Code)
}

func TestReservationsCancel_Inexistente404(t *testing.T) {
	app := buildAPIApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/reservations/42/cancel", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados y export
// ──────────────────────────────────────────────────────────────────────────────

func TestReservationsList_PorCliente(t *testing.T) {
	app := buildAPIApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/reservations", dto.CreateReservationRequest{
		ClientID: 1, ProductID: 1, Quantity: 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/clients/1/reservations", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var out dto.ReservationListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(1), out.Items[0].ClientID)
}

func TestReservationsExportXML(t *testing.T) {
	app := buildAPIApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/reservations", dto.CreateReservationRequest{
		ClientID: 1, ProductID: 1, Quantity: 2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/reservations/export.xml", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "xml")
}

func TestReservationsReceipt_PDF(t *testing.T) {
	app := buildAPIApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/reservations", dto.CreateReservationRequest{
		ClientID: 1, ProductID: 1, Quantity: 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeReservation(t, resp)

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/reservations/%d/receipt", created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}
