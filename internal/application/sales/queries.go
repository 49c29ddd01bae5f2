package sales

import (
	"context"
	"time"

	"github.com/dcastano/farmacia-api/internal/domain/entity"
	"github.com/dcastano/farmacia-api/internal/domain/repository"
)

// HistoryUseCase consultas de solo lectura sobre historiales de venta.
type HistoryUseCase struct {
	saleRepo        repository.SaleRepository
	creditSaleRepo  repository.CreditSaleRepository
	deletedSaleRepo repository.DeletedSaleRepository
}

// NewHistoryUseCase construye el caso de uso de consultas.
func NewHistoryUseCase(
	saleRepo repository.SaleRepository,
	creditSaleRepo repository.CreditSaleRepository,
	deletedSaleRepo repository.DeletedSaleRepository,
) *HistoryUseCase {
	return &HistoryUseCase{
		saleRepo:        saleRepo,
		creditSaleRepo:  creditSaleRepo,
		deletedSaleRepo: deletedSaleRepo,
	}
}

// SalesByStoreAndDate ventas de contado de una tienda en el rango dado
// (storeID vacío = todas las tiendas).
func (uc *HistoryUseCase) SalesByStoreAndDate(ctx context.Context, storeID string, from, to time.Time) ([]*entity.Sale, error) {
	return uc.saleRepo.ListByStoreAndDate(storeID, from, to)
}

// CreditSalesByStoreAndDate ventas a crédito en el rango dado.
func (uc *HistoryUseCase) CreditSalesByStoreAndDate(ctx context.Context, storeID string, from, to time.Time) ([]*entity.CreditSale, error) {
	return uc.creditSaleRepo.ListByStoreAndDate(storeID, from, to)
}

// DeletedSales historial de ventas reversadas, filtrable por tienda y por
// fecha de la venta original.
func (uc *HistoryUseCase) DeletedSales(ctx context.Context, storeID string, from, to *time.Time) ([]*entity.DeletedSale, error) {
	return uc.deletedSaleRepo.List(storeID, from, to)
}
