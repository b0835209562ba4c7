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

	"github.com/azri-hamza/rosa-sub000/internal/application/catalog"
	"github.com/azri-hamza/rosa-sub000/internal/application/sales"
	"github.com/azri-hamza/rosa-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/azri-hamza/rosa-sub000/internal/interfaces/http"
	"github.com/azri-hamza/rosa-sub000/pkg/config"
	"github.com/azri-hamza/rosa-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	vatRateRepo := postgres.NewVatRateRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	deliveryRepo := postgres.NewDeliveryNoteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	clientUC := catalog.NewClientUseCase(clientRepo, txRunner)
	productUC := catalog.NewProductUseCase(productRepo, vatRateRepo)
	vatRateUC := catalog.NewVatRateUseCase(vatRateRepo)
	quoteUC := sales.NewQuoteUseCase(txRunner, quoteRepo, clientRepo, productRepo, vatRateRepo)
	deliveryUC := sales.NewDeliveryUseCase(txRunner, deliveryRepo, clientRepo, productRepo, vatRateRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Rosa API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClientUC:   clientUC,
		ProductUC:  productUC,
		VatRateUC:  vatRateUC,
		QuoteUC:    quoteUC,
		DeliveryUC: deliveryUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
