package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastano/farmacia-api/internal/application/dto"
	"github.com/dcastano/farmacia-api/internal/application/ports"
	"github.com/dcastano/farmacia-api/internal/domain"
	"github.com/dcastano/farmacia-api/internal/domain/entity"
	"github.com/dcastano/farmacia-api/internal/domain/repository"
)

// Margen por defecto sobre el precio de compra cuando el alta no trae precio
// de venta.
var defaultMarkup = decimal.NewFromFloat(1.3)

// StockUseCase cubre las mutaciones de inventario fuera de ventas y
// traspasos: alta de producto (marca + primer lote), reposición con lote
// nuevo, corrección manual de cantidad y baja por daño. Toda mutación
// atraviesa la transacción y deja su entrada en el kardex.
type StockUseCase struct {
	txRunner     ports.TxRunner
	brandRepo    repository.BrandRepository
	batchRepo    repository.BatchRepository
	supplierRepo repository.SupplierRepository
	storeRepo    repository.StoreRepository
	userRepo     repository.UserRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner ports.TxRunner,
	brandRepo repository.BrandRepository,
	batchRepo repository.BatchRepository,
	supplierRepo repository.SupplierRepository,
	storeRepo repository.StoreRepository,
	userRepo repository.UserRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:     txRunner,
		brandRepo:    brandRepo,
		batchRepo:    batchRepo,
		supplierRepo: supplierRepo,
		storeRepo:    storeRepo,
		userRepo:     userRepo,
	}
}

// Intake da de alta una marca nueva con su primer lote y registra la entrada
// en el kardex. Si no viene precio de venta se aplica el margen por defecto
// sobre el precio de compra.
func (uc *StockUseCase) Intake(ctx context.Context, in dto.IntakeRequest) (*entity.Brand, *entity.ProductBatch, error) {
	if in.Name == "" || in.Batch == "" || in.StoreID == "" || in.SupplierID == "" || in.Quantity <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	if !in.BuyingPrice.GreaterThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidInput
	}

	store, err := uc.storeRepo.GetByID(in.StoreID)
	if err != nil || store == nil {
		return nil, nil, domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil || supplier == nil {
		return nil, nil, domain.ErrNotFound
	}

	existing, err := uc.brandRepo.GetByNameAndStore(in.Name, in.StoreID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, domain.ErrDuplicate
	}

	sellingPrice := in.BuyingPrice.Mul(defaultMarkup)
	if in.SellingPrice != nil {
		sellingPrice = *in.SellingPrice
	}

	now := time.Now()
	brand := &entity.Brand{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Category:     in.Category,
		MinStock:     in.MinStock,
		Quantity:     in.Quantity,
		SellingUnit:  in.SellingUnit,
		SellingPrice: sellingPrice,
		StoreID:      in.StoreID,
		EntityID:     store.EntityID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	batch := &entity.ProductBatch{
		ID:               uuid.New().String(),
		Name:             in.Name,
		BuyingPrice:      in.BuyingPrice,
		Category:         in.Category,
		Quantity:         in.Quantity,
		PurchaseQuantity: in.Quantity,
		SupplierID:       in.SupplierID,
		ExpiryDate:       in.ExpiryDate,
		PurchaseInvoice:  in.PurchaseInvoice,
		EntityID:         store.EntityID,
		BrandID:          brand.ID,
		Batch:            in.Batch,
		StoreID:          in.StoreID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := r.Brands.Create(brand); err != nil {
			return err
		}
		if err := r.Batches.Create(batch); err != nil {
			return err
		}
		return r.Movements.Append(receiveMovement(batch, brand, in.Quantity, supplier.Name, "product intake", now))
	})
	if err != nil {
		return nil, nil, err
	}
	return brand, batch, nil
}

// Refill repone una marca existente con un lote nuevo: crea el lote, suma la
// cantidad a la marca, actualiza el precio de venta si viene y registra la
// entrada en el kardex.
func (uc *StockUseCase) Refill(ctx context.Context, in dto.RefillRequest) (*entity.ProductBatch, error) {
	if in.BrandID == "" || in.Batch == "" || in.SupplierID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !in.BuyingPrice.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	brand, err := uc.brandRepo.GetByID(in.BrandID)
	if err != nil || brand == nil {
		return nil, domain.ErrNotFound
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil || supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	batch := &entity.ProductBatch{
		ID:               uuid.New().String(),
		Name:             brand.Name,
		BuyingPrice:      in.BuyingPrice,
		Category:         brand.Category,
		Quantity:         in.Quantity,
		PurchaseQuantity: in.Quantity,
		SupplierID:       in.SupplierID,
		ExpiryDate:       in.ExpiryDate,
		PurchaseInvoice:  in.PurchaseInvoice,
		EntityID:         brand.EntityID,
		BrandID:          brand.ID,
		Batch:            in.Batch,
		StoreID:          brand.StoreID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := r.Batches.Create(batch); err != nil {
			return err
		}
		if err := r.Brands.AdjustQuantity(brand.ID, in.Quantity); err != nil {
			return err
		}
		if in.SellingPrice != nil {
			if err := r.Brands.UpdatePrice(brand.ID, *in.SellingPrice); err != nil {
				return err
			}
		}
		return r.Movements.Append(receiveMovement(batch, brand, in.Quantity, supplier.Name, "product refill", now))
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// EditBatchQuantity corrige la cantidad de un lote a un valor absoluto. El
// ajuste se aplica como delta sobre lote y marca, y el kardex registra la
// diferencia como entrada o salida según el signo.
func (uc *StockUseCase) EditBatchQuantity(ctx context.Context, batchID string, newQuantity int64) (*entity.ProductBatch, error) {
	if batchID == "" || newQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil || batch == nil {
		return nil, domain.ErrNotFound
	}
	brand, err := uc.brandRepo.GetByID(batch.BrandID)
	if err != nil || brand == nil {
		return nil, domain.ErrNotFound
	}

	delta := newQuantity - batch.Quantity
	if delta == 0 {
		return batch, nil
	}

	now := time.Now()
	movement := &entity.Movement{
		ID:              uuid.New().String(),
		BatchID:         batch.ID,
		BrandID:         brand.ID,
		Name:            batch.Name,
		UnitOfMeasure:   brand.SellingUnit,
		Category:        brand.Category,
		Batch:           batch.Batch,
		ExpiryDate:      batch.ExpiryDate,
		PurchaseInvoice: batch.PurchaseInvoice,
		SupplierID:      batch.SupplierID,
		StoreID:         batch.StoreID,
		Remark:          "product edit",
		CreatedAt:       now,
	}
	if delta > 0 {
		movement.ReceivedQuantity = delta
		movement.ReceivedFrom = "product edit"
	} else {
		movement.IssuedQuantity = -delta
		movement.IssuedTo = "product edit"
	}

	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := r.Batches.AdjustQuantity(batch.ID, delta); err != nil {
			return err
		}
		if err := r.Brands.AdjustQuantity(brand.ID, delta); err != nil {
			return err
		}
		return r.Movements.Append(movement)
	})
	if err != nil {
		return nil, err
	}
	batch.Quantity = newQuantity
	batch.UpdatedAt = now
	return batch, nil
}

// ReportDamaged da de baja producto dañado: descuenta lote y marca con el
// decremento condicional, archiva el reporte y deja la salida en el kardex.
func (uc *StockUseCase) ReportDamaged(ctx context.Context, reportedBy string, in dto.DamagedRequest) (*entity.DamagedReport, error) {
	if in.BatchID == "" || reportedBy == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	batch, err := uc.batchRepo.GetByID(in.BatchID)
	if err != nil || batch == nil {
		return nil, domain.ErrNotFound
	}
	brand, err := uc.brandRepo.GetByID(batch.BrandID)
	if err != nil || brand == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.userRepo.GetByID(reportedBy)
	if err != nil || user == nil {
		return nil, domain.ErrNotFound
	}
	if batch.Quantity < in.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	now := time.Now()
	report := &entity.DamagedReport{
		ID:         uuid.New().String(),
		BatchID:    batch.ID,
		Quantity:   in.Quantity,
		Reason:     in.Reason,
		ReportedBy: reportedBy,
		StoreID:    batch.StoreID,
		CreatedAt:  now,
	}

	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := r.Batches.AdjustQuantity(batch.ID, -in.Quantity); err != nil {
			return err
		}
		if err := r.Brands.AdjustQuantity(brand.ID, -in.Quantity); err != nil {
			return err
		}
		if err := r.Damaged.Create(report); err != nil {
			return err
		}
		return r.Movements.Append(&entity.Movement{
			ID:              uuid.New().String(),
			BatchID:         batch.ID,
			BrandID:         brand.ID,
			Name:            batch.Name,
			UnitOfMeasure:   brand.SellingUnit,
			Category:        brand.Category,
			IssuedQuantity:  in.Quantity,
			IssuedTo:        "damaged report",
			Batch:           batch.Batch,
			ExpiryDate:      batch.ExpiryDate,
			PurchaseInvoice: batch.PurchaseInvoice,
			SupplierID:      batch.SupplierID,
			StoreID:         batch.StoreID,
			Remark:          "Damaged",
			CreatedAt:       now,
		})
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// receiveMovement arma la fila de entrada del kardex para intake y refill.
func receiveMovement(batch *entity.ProductBatch, brand *entity.Brand, quantity int64, receivedFrom, remark string, now time.Time) *entity.Movement {
	return &entity.Movement{
		ID:               uuid.New().String(),
		BatchID:          batch.ID,
		BrandID:          brand.ID,
		Name:             batch.Name,
		UnitOfMeasure:    brand.SellingUnit,
		Category:         brand.Category,
		ReceivedQuantity: quantity,
		ReceivedFrom:     receivedFrom,
		Batch:            batch.Batch,
		ExpiryDate:       batch.ExpiryDate,
		PurchaseInvoice:  batch.PurchaseInvoice,
		SupplierID:       batch.SupplierID,
		StoreID:          batch.StoreID,
		Remark:           remark,
		CreatedAt:        now,
	}
}
