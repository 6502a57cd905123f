package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/reservas-api/internal/application/auth"
	appreservation "github.com/tu-usuario/reservas-api/internal/application/reservation"
	"github.com/tu-usuario/reservas-api/internal/application/stats"
	"github.com/tu-usuario/reservas-api/internal/application/usecase"
	"github.com/tu-usuario/reservas-api/internal/domain/repository"
	"github.com/tu-usuario/reservas-api/internal/infrastructure/events"
	"github.com/tu-usuario/reservas-api/internal/infrastructure/memory"
	"github.com/tu-usuario/reservas-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/reservas-api/internal/interfaces/http"
	"github.com/tu-usuario/reservas-api/pkg/config"
	"github.com/tu-usuario/reservas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		clientRepo      repository.ClientRepository
		productRepo     repository.ProductRepository
		reservationRepo repository.ReservationRepository
		userRepo        repository.UserRepository
		txRunner        appreservation.TxRunner
	)

	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		clientRepo = postgres.NewClientRepository(pool)
		productRepo = postgres.NewProductRepository(pool)
		reservationRepo = postgres.NewReservationRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	default: // memory
		clients := memory.NewClientRepository()
		products := memory.NewProductRepository()
		reservations := memory.NewReservationRepository()
		clientRepo = clients
		productRepo = products
		reservationRepo = reservations
		userRepo = memory.NewUserRepository()
		txRunner = memory.NewTxRunner(clients, products, reservations)

		if cfg.App.Env == "development" {
			if err := memory.Seed(clients, products); err != nil {
				log.Fatal().Err(err).Msg("cargar datos de ejemplo")
			}
			log.Info().Msg("datos de ejemplo cargados en memoria")
		}
	}

	// Publicación de eventos opcional: sin brokers, el flujo opera sin Kafka.
	var publisher appreservation.EventPublisher
	if cfg.Kafka.Brokers != "" {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	reservationUC := appreservation.NewUseCase(
		txRunner, clientRepo, productRepo, reservationRepo, publisher, log,
	)
	clientUC := usecase.NewClientUseCase(clientRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	statsUC := stats.NewUseCase(clientRepo, productRepo, reservationRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Reservas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClientUC:      clientUC,
		ProductUC:     productUC,
		ReservationUC: reservationUC,
		StatsUC:       statsUC,
		AuthUC:        authUC,
		ClientRepo:    clientRepo,
		ProductRepo:   productRepo,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
