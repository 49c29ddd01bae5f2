package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastano/farmacia-api/internal/application/dto"
	"github.com/dcastano/farmacia-api/internal/application/ports"
	"github.com/dcastano/farmacia-api/internal/domain"
	"github.com/dcastano/farmacia-api/internal/domain/entity"
	"github.com/dcastano/farmacia-api/internal/domain/repository"
)

// SellUseCase aplica ventas de contado y a crédito de forma transaccional:
// descuento condicional de stock (lote + marca), registro de venta y entrada
// en el kardex, todo en una sola transacción con Commit/Rollback. Para las
// ventas a crédito agrega el débito del saldo del cliente en la misma tx.
type SellUseCase struct {
	txRunner     ports.TxRunner
	batchRepo    repository.BatchRepository
	brandRepo    repository.BrandRepository
	userRepo     repository.UserRepository
	patientRepo  repository.PatientRepository
	customerRepo repository.CreditCustomerRepository
}

// NewSellUseCase construye el caso de uso.
func NewSellUseCase(
	txRunner ports.TxRunner,
	batchRepo repository.BatchRepository,
	brandRepo repository.BrandRepository,
	userRepo repository.UserRepository,
	patientRepo repository.PatientRepository,
	customerRepo repository.CreditCustomerRepository,
) *SellUseCase {
	return &SellUseCase{
		txRunner:     txRunner,
		batchRepo:    batchRepo,
		brandRepo:    brandRepo,
		userRepo:     userRepo,
		patientRepo:  patientRepo,
		customerRepo: customerRepo,
	}
}

// saleContext reúne lo leído y validado antes de abrir la transacción.
type saleContext struct {
	batch *entity.ProductBatch
	brand *entity.Brand
	total decimal.Decimal
}

// validateSale ejecuta las validaciones comunes (sin efectos secundarios).
func (uc *SellUseCase) validateSale(userID, batchID string, quantity int64, patientID, customerName string) (*saleContext, error) {
	if batchID == "" || userID == "" || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if patientID == "" && customerName == "" {
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
	if !brand.SellingPrice.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidPrice
	}
	// Pre-chequeo informativo: la garantía real es el decremento condicional
	// dentro de la transacción.
	if batch.Quantity < quantity {
		return nil, domain.ErrInsufficientStock
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil || user == nil {
		return nil, domain.ErrNotFound
	}
	if patientID != "" {
		patient, err := uc.patientRepo.GetByID(patientID)
		if err != nil || patient == nil {
			return nil, domain.ErrNotFound
		}
	}

	total := brand.SellingPrice.Mul(decimal.NewFromInt(quantity))
	return &saleContext{batch: batch, brand: brand, total: total}, nil
}

// Sell registra una venta de contado: decrementa lote y marca, crea la venta
// y agrega la salida al kardex. Cualquier fallo revierte todo.
func (uc *SellUseCase) Sell(ctx context.Context, userID string, in dto.SellRequest) (*dto.SaleResponse, error) {
	sc, err := uc.validateSale(userID, in.BatchID, in.Quantity, in.PatientID, in.CustomerName)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:           uuid.New().String(),
		BatchID:      sc.batch.ID,
		UserID:       userID,
		Quantity:     in.Quantity,
		TotalPrice:   sc.total,
		PatientID:    in.PatientID,
		CustomerName: in.CustomerName,
		StoreID:      sc.batch.StoreID,
		CreatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := r.Batches.AdjustQuantity(sc.batch.ID, -in.Quantity); err != nil {
			return err
		}
		if err := r.Brands.AdjustQuantity(sc.brand.ID, -in.Quantity); err != nil {
			return err
		}
		if err := r.Sales.Create(sale); err != nil {
			return err
		}
		return r.Movements.Append(uc.issueMovement(sc, in.Quantity, "Sale", "sell", now))
	})
	if err != nil {
		return nil, err
	}

	return saleResponse(sale, "", ""), nil
}

// SellOnCredit registra una venta a crédito: además del flujo de contado,
// valida al cliente (existente y no bloqueado) antes de mutar y debita su
// saldo por el total dentro de la misma transacción.
func (uc *SellUseCase) SellOnCredit(ctx context.Context, userID string, in dto.CreditSellRequest) (*dto.SaleResponse, error) {
	if in.CreditCustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	sc, err := uc.validateSale(userID, in.BatchID, in.Quantity, in.PatientID, in.CustomerName)
	if err != nil {
		return nil, err
	}

	customer, err := uc.customerRepo.GetByID(in.CreditCustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if !customer.IsValid {
		return nil, domain.ErrCustomerBlocked
	}

	now := time.Now()
	sale := &entity.CreditSale{
		ID:               uuid.New().String(),
		BatchID:          sc.batch.ID,
		UserID:           userID,
		Quantity:         in.Quantity,
		TotalPrice:       sc.total,
		PatientID:        in.PatientID,
		CustomerName:     in.CustomerName,
		StoreID:          sc.batch.StoreID,
		CreditCustomerID: customer.ID,
		PaymentStatus:    entity.PaymentUnpaid,
		CreatedAt:        now,
	}

	issuedTo := fmt.Sprintf("Credit sale: %s", customer.Name)
	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		if err := r.Batches.AdjustQuantity(sc.batch.ID, -in.Quantity); err != nil {
			return err
		}
		if err := r.Brands.AdjustQuantity(sc.brand.ID, -in.Quantity); err != nil {
			return err
		}
		if err := r.CreditSales.Create(sale); err != nil {
			return err
		}
		if err := r.Movements.Append(uc.issueMovement(sc, in.Quantity, issuedTo, "credit sell", now)); err != nil {
			return err
		}
		return r.CreditCustomers.AdjustBalance(customer.ID, sc.total.Neg())
	})
	if err != nil {
		return nil, err
	}

	return saleResponse(&entity.Sale{
		ID: sale.ID, BatchID: sale.BatchID, UserID: sale.UserID,
		Quantity: sale.Quantity, TotalPrice: sale.TotalPrice,
		PatientID: sale.PatientID, CustomerName: sale.CustomerName,
		StoreID: sale.StoreID, CreatedAt: sale.CreatedAt,
	}, sale.CreditCustomerID, sale.PaymentStatus), nil
}

// issueMovement arma la fila de salida del kardex para una venta.
func (uc *SellUseCase) issueMovement(sc *saleContext, quantity int64, issuedTo, remark string, now time.Time) *entity.Movement {
	return &entity.Movement{
		ID:              uuid.New().String(),
		BatchID:         sc.batch.ID,
		BrandID:         sc.brand.ID,
		Name:            sc.batch.Name,
		UnitOfMeasure:   sc.brand.SellingUnit,
		Category:        sc.brand.Category,
		IssuedQuantity:  quantity,
		IssuedTo:        issuedTo,
		Batch:           sc.batch.Batch,
		ExpiryDate:      sc.batch.ExpiryDate,
		PurchaseInvoice: sc.batch.PurchaseInvoice,
		SupplierID:      sc.batch.SupplierID,
		StoreID:         sc.batch.StoreID,
		Remark:          remark,
		CreatedAt:       now,
	}
}

func saleResponse(s *entity.Sale, creditCustomerID, paymentStatus string) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:               s.ID,
		BatchID:          s.BatchID,
		UserID:           s.UserID,
		Quantity:         s.Quantity,
		TotalPrice:       s.TotalPrice,
		PatientID:        s.PatientID,
		CustomerName:     s.CustomerName,
		StoreID:          s.StoreID,
		CreditCustomerID: creditCustomerID,
		PaymentStatus:    paymentStatus,
		CreatedAt:        s.CreatedAt,
	}
}
