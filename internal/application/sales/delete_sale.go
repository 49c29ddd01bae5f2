package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dcastano/farmacia-api/internal/application/ports"
	"github.com/dcastano/farmacia-api/internal/domain"
	"github.com/dcastano/farmacia-api/internal/domain/entity"
	"github.com/dcastano/farmacia-api/internal/domain/repository"
)

// DeleteSaleUseCase reversa una venta (de contado o a crédito): restaura el
// stock del lote y la marca, archiva la copia en el historial de ventas
// eliminadas, borra el registro original y agrega la entrada compensatoria al
// kardex. Para crédito, acredita además el saldo del cliente. Todo en una
// transacción: el borrado condicional del registro original va primero para
// que dos reversas concurrentes no restauren el stock dos veces.
type DeleteSaleUseCase struct {
	txRunner       ports.TxRunner
	saleRepo       repository.SaleRepository
	creditSaleRepo repository.CreditSaleRepository
	batchRepo      repository.BatchRepository
	brandRepo      repository.BrandRepository
	customerRepo   repository.CreditCustomerRepository
}

// NewDeleteSaleUseCase construye el caso de uso.
func NewDeleteSaleUseCase(
	txRunner ports.TxRunner,
	saleRepo repository.SaleRepository,
	creditSaleRepo repository.CreditSaleRepository,
	batchRepo repository.BatchRepository,
	brandRepo repository.BrandRepository,
	customerRepo repository.CreditCustomerRepository,
) *DeleteSaleUseCase {
	return &DeleteSaleUseCase{
		txRunner:       txRunner,
		saleRepo:       saleRepo,
		creditSaleRepo: creditSaleRepo,
		batchRepo:      batchRepo,
		brandRepo:      brandRepo,
		customerRepo:   customerRepo,
	}
}

// DeleteSale reversa una venta de contado.
func (uc *DeleteSaleUseCase) DeleteSale(ctx context.Context, deletedBy, saleID, reason string) (*entity.DeletedSale, error) {
	if saleID == "" || deletedBy == "" || reason == "" {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	batch, brand, err := uc.loadProduct(sale.BatchID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	deleted := uc.archiveRecord(sale.BatchID, sale.UserID, sale.Quantity, reason, deletedBy, sale.CreatedAt, sale.StoreID, now)

	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		// Borrado condicional primero: si otra reversa ganó, aquí falla y
		// no se toca el stock.
		if err := r.Sales.Delete(sale.ID); err != nil {
			return err
		}
		return uc.applyReversal(r, batch, brand, sale.Quantity, reason, deleted, now)
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// DeleteCreditSale reversa una venta a crédito y acredita el saldo del
// cliente por el total original. El bloqueo del cliente no impide la reversa.
func (uc *DeleteSaleUseCase) DeleteCreditSale(ctx context.Context, deletedBy, saleID, reason string) (*entity.DeletedSale, error) {
	if saleID == "" || deletedBy == "" || reason == "" {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.creditSaleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(sale.CreditCustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	batch, brand, err := uc.loadProduct(sale.BatchID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	deleted := uc.archiveRecord(sale.BatchID, sale.UserID, sale.Quantity, reason, deletedBy, sale.CreatedAt, sale.StoreID, now)

	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := r.CreditSales.Delete(sale.ID); err != nil {
			return err
		}
		if err := uc.applyReversal(r, batch, brand, sale.Quantity, reason, deleted, now); err != nil {
			return err
		}
		return r.CreditCustomers.AdjustBalance(customer.ID, sale.TotalPrice)
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (uc *DeleteSaleUseCase) loadProduct(batchID string) (*entity.ProductBatch, *entity.Brand, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil || batch == nil {
		return nil, nil, domain.ErrNotFound
	}
	brand, err := uc.brandRepo.GetByID(batch.BrandID)
	if err != nil || brand == nil {
		return nil, nil, domain.ErrNotFound
	}
	return batch, brand, nil
}

func (uc *DeleteSaleUseCase) archiveRecord(batchID, userID string, quantity int64, reason, deletedBy string, originalDate time.Time, storeID string, now time.Time) *entity.DeletedSale {
	return &entity.DeletedSale{
		ID:               uuid.New().String(),
		BatchID:          batchID,
		UserID:           userID,
		Quantity:         quantity,
		Reason:           reason,
		DeletedBy:        deletedBy,
		OriginalSaleDate: originalDate,
		StoreID:          storeID,
		CreatedAt:        now,
	}
}

// applyReversal restaura stock, archiva la copia y agrega la devolución al kardex.
func (uc *DeleteSaleUseCase) applyReversal(r ports.Repos, batch *entity.ProductBatch, brand *entity.Brand, quantity int64, reason string, deleted *entity.DeletedSale, now time.Time) error {
	if err := r.Batches.AdjustQuantity(batch.ID, quantity); err != nil {
		return err
	}
	if err := r.Brands.AdjustQuantity(brand.ID, quantity); err != nil {
		return err
	}
	if err := r.DeletedSales.Create(deleted); err != nil {
		return err
	}
	receivedFrom := reason
	if receivedFrom == "" {
		receivedFrom = "Refund"
	}
	return r.Movements.Append(&entity.Movement{
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
		Remark:           "deleted sale return",
		CreatedAt:        now,
	})
}
