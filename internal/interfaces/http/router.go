package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/farmacia-api/internal/application/credit"
	"github.com/dcastano/farmacia-api/internal/application/sales"
	"github.com/dcastano/farmacia-api/internal/application/stock"
	"github.com/dcastano/farmacia-api/internal/application/transfer"
	"github.com/dcastano/farmacia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SellUC       *sales.SellUseCase
	DeleteSaleUC *sales.DeleteSaleUseCase
	HistoryUC    *sales.HistoryUseCase
	TransferUC   *transfer.TransferUseCase
	StockUC      *stock.StockUseCase
	StockQueryUC *stock.QueryUseCase
	CustomerUC   *credit.CustomerUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todas requieren Bearer Token; vender
// exige rol de farmacia o admin, y reversar ventas exige admin o finanzas.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	canSell := RequireRole(entity.RoleAdmin, entity.RolePharmacist)
	canReverse := RequireRole(entity.RoleAdmin, entity.RoleFinance)

	// Ventas de contado (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SellUC, deps.DeleteSaleUC, deps.HistoryUC)
	salesGroup.Post("/sell", canSell, saleHandler.Sell)
	salesGroup.Get("/", saleHandler.ListSales)
	salesGroup.Get("/deleted", saleHandler.ListDeletedSales)
	salesGroup.Delete("/:id", canReverse, saleHandler.DeleteSale)

	// Ventas a crédito (protegido)
	creditSales := protected.Group("/credit-sales")
	creditSales.Post("/sell", canSell, saleHandler.CreditSell)
	creditSales.Get("/", saleHandler.ListCreditSales)
	creditSales.Delete("/:id", canReverse, saleHandler.DeleteCreditSale)

	// Traspasos entre tiendas (protegido)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Request)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/value-report", transferHandler.ValueReport)
	transfers.Post("/:id/approve", transferHandler.Approve)
	transfers.Post("/:id/reject", transferHandler.Reject)

	// Inventario y kardex (protegido)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.StockQueryUC)
	stockGroup.Post("/intake", stockHandler.Intake)
	stockGroup.Post("/refill", stockHandler.Refill)
	stockGroup.Post("/damaged", stockHandler.ReportDamaged)
	stockGroup.Get("/damaged", stockHandler.ListDamaged)
	stockGroup.Get("/stockouts", stockHandler.Stockouts)
	stockGroup.Get("/batches/expiring", stockHandler.Expiring)
	stockGroup.Get("/batches/expired", stockHandler.Expired)
	stockGroup.Put("/batches/:id/quantity", stockHandler.EditQuantity)
	stockGroup.Get("/stores/:store_id/brands", stockHandler.BrandsByStore)
	stockGroup.Get("/stores/:store_id/movements", stockHandler.MovementsByStore)
	stockGroup.Get("/stores/:store_id/brands/:brand_id/bin-card", stockHandler.BinCard)
	stockGroup.Get("/brands/:brand_id/batches", stockHandler.BatchesByBrand)

	// Clientes de crédito (protegido)
	customers := protected.Group("/credit-customers")
	customerHandler := NewCreditCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.Get)
	customers.Put("/:id", customerHandler.Update)
	customers.Post("/:id/refill", customerHandler.RefillBalance)
	customers.Post("/:id/toggle", customerHandler.ToggleValidity)
}
