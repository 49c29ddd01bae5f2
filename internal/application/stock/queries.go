package stock

import (
	"context"
	"time"

	"github.com/dcastano/farmacia-api/internal/application/dto"
	"github.com/dcastano/farmacia-api/internal/domain"
	"github.com/dcastano/farmacia-api/internal/domain/entity"
	"github.com/dcastano/farmacia-api/internal/domain/repository"
	domstock "github.com/dcastano/farmacia-api/internal/domain/stock"
)

// QueryUseCase consultas de solo lectura sobre el inventario y el kardex.
type QueryUseCase struct {
	brandRepo    repository.BrandRepository
	batchRepo    repository.BatchRepository
	movementRepo repository.MovementRepository
	damagedRepo  repository.DamagedRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(
	brandRepo repository.BrandRepository,
	batchRepo repository.BatchRepository,
	movementRepo repository.MovementRepository,
	damagedRepo repository.DamagedRepository,
) *QueryUseCase {
	return &QueryUseCase{
		brandRepo:    brandRepo,
		batchRepo:    batchRepo,
		movementRepo: movementRepo,
		damagedRepo:  damagedRepo,
	}
}

// Stockouts marcas en punto de quiebre (quantity <= minStock); storeID vacío
// consulta todas las tiendas.
func (uc *QueryUseCase) Stockouts(ctx context.Context, storeID string) ([]*entity.Brand, error) {
	return uc.brandRepo.ListStockouts(storeID)
}

// BrandsByStore marcas de una tienda.
func (uc *QueryUseCase) BrandsByStore(ctx context.Context, storeID string) ([]*entity.Brand, error) {
	if storeID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.brandRepo.ListByStore(storeID)
}

// BatchesByBrand lotes de una marca.
func (uc *QueryUseCase) BatchesByBrand(ctx context.Context, brandID string) ([]*entity.ProductBatch, error) {
	if brandID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.batchRepo.ListByBrand(brandID)
}

// ExpiringBatches lotes con stock que vencen dentro de los próximos months
// meses (por defecto 12), del vencimiento más próximo al más lejano.
func (uc *QueryUseCase) ExpiringBatches(ctx context.Context, months int) ([]*entity.ProductBatch, error) {
	if months <= 0 {
		months = 12
	}
	limit := time.Now().AddDate(0, months, 0)
	return uc.batchRepo.ListExpiringBefore(limit, true)
}

// ExpiredBatches lotes ya vencidos, incluidos los de cantidad cero.
func (uc *QueryUseCase) ExpiredBatches(ctx context.Context) ([]*entity.ProductBatch, error) {
	return uc.batchRepo.ListExpiringBefore(time.Now(), false)
}

// BinCard kardex de una marca en una tienda: cada fila lleva el saldo
// acumulado reconstruido con el pliegue sobre la secuencia ordenada.
func (uc *QueryUseCase) BinCard(ctx context.Context, storeID, brandID string) ([]dto.MovementResponse, error) {
	if storeID == "" || brandID == "" {
		return nil, domain.ErrInvalidInput
	}
	movements, err := uc.movementRepo.ListByStoreAndBrand(storeID, brandID)
	if err != nil {
		return nil, err
	}
	balances := domstock.BalanceSeries(movements)
	out := make([]dto.MovementResponse, len(movements))
	for i, m := range movements {
		out[i] = dto.MovementResponse{
			ID:               m.ID,
			BatchID:          m.BatchID,
			BrandID:          m.BrandID,
			Name:             m.Name,
			UnitOfMeasure:    m.UnitOfMeasure,
			IssuedQuantity:   m.IssuedQuantity,
			IssuedTo:         m.IssuedTo,
			ReceivedQuantity: m.ReceivedQuantity,
			ReceivedFrom:     m.ReceivedFrom,
			Batch:            m.Batch,
			StoreID:          m.StoreID,
			Remark:           m.Remark,
			Balance:          balances[i],
			CreatedAt:        m.CreatedAt,
		}
	}
	return out, nil
}

// MovementsByStore movimientos de toda una tienda, con rango de fechas
// opcional.
func (uc *QueryUseCase) MovementsByStore(ctx context.Context, storeID string, from, to *time.Time) ([]*entity.Movement, error) {
	if storeID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movementRepo.ListByStore(storeID, from, to)
}

// DamagedReports reportes de daño por tienda en el rango dado.
func (uc *QueryUseCase) DamagedReports(ctx context.Context, storeID string, from, to time.Time) ([]*entity.DamagedReport, error) {
	return uc.damagedRepo.List(storeID, from, to)
}
