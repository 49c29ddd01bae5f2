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

	"github.com/dcastano/farmacia-api/internal/application/credit"
	"github.com/dcastano/farmacia-api/internal/application/sales"
	"github.com/dcastano/farmacia-api/internal/application/stock"
	"github.com/dcastano/farmacia-api/internal/application/transfer"
	"github.com/dcastano/farmacia-api/internal/infrastructure/postgres"
	httpRouter "github.com/dcastano/farmacia-api/internal/interfaces/http"
	"github.com/dcastano/farmacia-api/pkg/config"
	"github.com/dcastano/farmacia-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	brandRepo := postgres.NewBrandRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	creditSaleRepo := postgres.NewCreditSaleRepository(pool)
	deletedSaleRepo := postgres.NewDeletedSaleRepository(pool)
	customerRepo := postgres.NewCreditCustomerRepository(pool)
	damagedRepo := postgres.NewDamagedRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	patientRepo := postgres.NewPatientRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	sellUC := sales.NewSellUseCase(txRunner, batchRepo, brandRepo, userRepo, patientRepo, customerRepo)
	deleteSaleUC := sales.NewDeleteSaleUseCase(txRunner, saleRepo, creditSaleRepo, batchRepo, brandRepo, customerRepo)
	historyUC := sales.NewHistoryUseCase(saleRepo, creditSaleRepo, deletedSaleRepo)
	transferUC := transfer.NewTransferUseCase(txRunner, transferRepo, batchRepo, brandRepo, storeRepo)
	stockUC := stock.NewStockUseCase(txRunner, brandRepo, batchRepo, supplierRepo, storeRepo, userRepo)
	stockQueryUC := stock.NewQueryUseCase(brandRepo, batchRepo, movementRepo, damagedRepo)
	customerUC := credit.NewCustomerUseCase(customerRepo)

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
		Title:    "Farmacia API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SellUC:       sellUC,
		DeleteSaleUC: deleteSaleUC,
		HistoryUC:    historyUC,
		TransferUC:   transferUC,
		StockUC:      stockUC,
		StockQueryUC: stockQueryUC,
		CustomerUC:   customerUC,
		JWTSecret:    cfg.JWT.Secret,
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
