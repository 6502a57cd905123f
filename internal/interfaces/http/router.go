package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/reservas-api/internal/application/auth"
	"github.com/tu-usuario/reservas-api/internal/application/reservation"
	"github.com/tu-usuario/reservas-api/internal/application/stats"
	"github.com/tu-usuario/reservas-api/internal/application/usecase"
	"github.com/tu-usuario/reservas-api/internal/domain/entity"
	"github.com/tu-usuario/reservas-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClientUC      *usecase.ClientUseCase
	ProductUC     *usecase.ProductUseCase
	ReservationUC *reservation.UseCase
	StatsUC       *stats.UseCase
	AuthUC        *auth.UseCase
	ClientRepo    repository.ClientRepository
	ProductRepo   repository.ProductRepository
	JWTSecret     string
}

// Router registra las rutas de la API. Las lecturas son públicas; las
// mutaciones requieren Bearer Token, y los deletes además rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	protected := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Clients
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Get("/search", clientHandler.Search)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Post("/", protected, clientHandler.Create)
	clients.Put("/:id", protected, clientHandler.Update)
	clients.Delete("/:id", protected, adminOnly, clientHandler.Delete)
	clients.Post("/:id/recharge", protected, clientHandler.Recharge)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", protected, productHandler.Create)
	products.Put("/:id", protected, productHandler.Update)
	products.Delete("/:id", protected, adminOnly, productHandler.Delete)

	// Reservations
	reservations := api.Group("/reservations")
	reservationHandler := NewReservationHandler(deps.ReservationUC, deps.ClientRepo, deps.ProductRepo)
	reservations.Get("/", reservationHandler.List)
	reservations.Get("/export.xml", reservationHandler.ExportXML)
	reservations.Get("/:id", reservationHandler.GetByID)
	reservations.Get("/:id/receipt", reservationHandler.Receipt)
	reservations.Post("/", protected, reservationHandler.Create)
	reservations.Post("/:id/cancel", protected, reservationHandler.Cancel)
	clients.Get("/:id/reservations", reservationHandler.ListByClient)

	// Stats
	statsHandler := NewStatsHandler(deps.StatsUC)
	api.Get("/stats", statsHandler.Summary)
}
