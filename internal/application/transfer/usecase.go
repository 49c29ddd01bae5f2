package transfer

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

// TransferUseCase implementa el flujo de traspaso en dos fases: la solicitud
// queda pending sin tocar stock (la cantidad no se reserva), y la aprobación
// — permitida solo a una persona de contacto de la tienda receptora — mueve
// el stock y cierra el traspaso en una sola transacción. El cierre es una
// transición condicional: un traspaso ya terminal no se procesa dos veces.
type TransferUseCase struct {
	txRunner     ports.TxRunner
	transferRepo repository.TransferRepository
	batchRepo    repository.BatchRepository
	brandRepo    repository.BrandRepository
	storeRepo    repository.StoreRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner ports.TxRunner,
	transferRepo repository.TransferRepository,
	batchRepo repository.BatchRepository,
	brandRepo repository.BrandRepository,
	storeRepo repository.StoreRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:     txRunner,
		transferRepo: transferRepo,
		batchRepo:    batchRepo,
		brandRepo:    brandRepo,
		storeRepo:    storeRepo,
	}
}

// Request crea la solicitud en estado pending. Valida tiendas y existencias
// pero no descuenta nada: el stock se vuelve a validar al aprobar.
func (uc *TransferUseCase) Request(ctx context.Context, in dto.TransferRequest) (*entity.Transfer, error) {
	if in.BatchID == "" || in.SenderStoreID == "" || in.ReceiverStoreID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SenderStoreID == in.ReceiverStoreID {
		return nil, domain.ErrInvalidInput
	}

	batch, err := uc.batchRepo.GetByID(in.BatchID)
	if err != nil || batch == nil || batch.StoreID != in.SenderStoreID {
		return nil, domain.ErrNotFound
	}
	brand, err := uc.brandRepo.GetByID(batch.BrandID)
	if err != nil || brand == nil {
		return nil, domain.ErrNotFound
	}

	senderOK, err := uc.storeRepo.Exists(in.SenderStoreID)
	if err != nil {
		return nil, err
	}
	receiverOK, err := uc.storeRepo.Exists(in.ReceiverStoreID)
	if err != nil {
		return nil, err
	}
	if !senderOK || !receiverOK {
		return nil, domain.ErrNotFound
	}

	if batch.Quantity < in.Quantity {
		return nil, domain.ErrInsufficientStock
	}

	price := brand.SellingPrice
	if in.Price != nil {
		price = *in.Price
	}

	now := time.Now()
	transfer := &entity.Transfer{
		ID:              uuid.New().String(),
		BatchID:         batch.ID,
		SenderStoreID:   in.SenderStoreID,
		ReceiverStoreID: in.ReceiverStoreID,
		Quantity:        in.Quantity,
		Price:           price,
		Batch:           batch.Batch,
		Status:          entity.TransferPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.transferRepo.Create(transfer); err != nil {
		return nil, err
	}
	return transfer, nil
}

// Approve cierra el traspaso como approved y mueve el stock: decremento
// condicional en la tienda emisora, alta-o-incremento en la receptora
// (empate por nombre+lote+tienda) y dos entradas de kardex, una de salida y
// una de entrada. Solo una persona de contacto de la tienda receptora puede
// aprobar; el stock del emisor se revalida porque pudo drenarse desde la
// solicitud.
func (uc *TransferUseCase) Approve(ctx context.Context, userID, transferID string, in dto.ApproveTransferRequest) (*entity.Transfer, error) {
	transfer, receiverStore, err := uc.loadForDecision(userID, transferID)
	if err != nil {
		return nil, err
	}

	senderStore, err := uc.storeRepo.GetByID(transfer.SenderStoreID)
	if err != nil || senderStore == nil {
		return nil, domain.ErrNotFound
	}
	batch, err := uc.batchRepo.GetByID(transfer.BatchID)
	if err != nil || batch == nil || batch.StoreID != transfer.SenderStoreID {
		return nil, domain.ErrNotFound
	}
	senderBrand, err := uc.brandRepo.GetByID(batch.BrandID)
	if err != nil || senderBrand == nil {
		return nil, domain.ErrNotFound
	}

	price := transfer.Price
	if in.NewPrice != nil {
		price = *in.NewPrice
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(r ports.Repos) error {
		// La transición terminal va primero: si el traspaso dejó de estar
		// pending, nada más se ejecuta.
		if err := r.Transfers.CloseIfPending(transfer.ID, entity.TransferApproved); err != nil {
			return err
		}

		// Decremento condicional en el emisor; falla si ya no alcanza.
		if err := r.Batches.AdjustQuantity(batch.ID, -transfer.Quantity); err != nil {
			return err
		}
		if err := r.Brands.AdjustQuantity(senderBrand.ID, -transfer.Quantity); err != nil {
			return err
		}

		receiverBrand, receiverBatch, err := uc.placeInReceiver(r, batch, senderBrand, receiverStore, transfer, price, in.MinStock, now)
		if err != nil {
			return err
		}

		// Kardex: salida en el emisor, entrada en el receptor.
		if err := r.Movements.Append(&entity.Movement{
			ID:              uuid.New().String(),
			BatchID:         batch.ID,
			BrandID:         senderBrand.ID,
			Name:            batch.Name,
			UnitOfMeasure:   senderBrand.SellingUnit,
			Category:        senderBrand.Category,
			IssuedQuantity:  transfer.Quantity,
			IssuedTo:        receiverStore.Name,
			Batch:           batch.Batch,
			ExpiryDate:      batch.ExpiryDate,
			PurchaseInvoice: batch.PurchaseInvoice,
			SupplierID:      batch.SupplierID,
			StoreID:         transfer.SenderStoreID,
			Remark:          "transferred to other store",
			CreatedAt:       now,
		}); err != nil {
			return err
		}
		return r.Movements.Append(&entity.Movement{
			ID:               uuid.New().String(),
			BatchID:          receiverBatch.ID,
			BrandID:          receiverBrand.ID,
			Name:             batch.Name,
			UnitOfMeasure:    receiverBrand.SellingUnit,
			Category:         receiverBrand.Category,
			ReceivedQuantity: transfer.Quantity,
			ReceivedFrom:     senderStore.Name,
			Batch:            batch.Batch,
			ExpiryDate:       batch.ExpiryDate,
			PurchaseInvoice:  batch.PurchaseInvoice,
			SupplierID:       batch.SupplierID,
			StoreID:          transfer.ReceiverStoreID,
			Remark:           "received from other store",
			CreatedAt:        now,
		})
	})
	if err != nil {
		return nil, err
	}

	transfer.Status = entity.TransferApproved
	transfer.UpdatedAt = now
	return transfer, nil
}

// Reject cierra el traspaso como rejected; no toca stock ni kardex.
func (uc *TransferUseCase) Reject(ctx context.Context, userID, transferID string) (*entity.Transfer, error) {
	transfer, _, err := uc.loadForDecision(userID, transferID)
	if err != nil {
		return nil, err
	}
	if err := uc.transferRepo.CloseIfPending(transfer.ID, entity.TransferRejected); err != nil {
		return nil, err
	}
	transfer.Status = entity.TransferRejected
	transfer.UpdatedAt = time.Now()
	return transfer, nil
}

// loadForDecision carga el traspaso y autoriza al usuario como persona de
// contacto de la tienda receptora.
func (uc *TransferUseCase) loadForDecision(userID, transferID string) (*entity.Transfer, *entity.Store, error) {
	if userID == "" || transferID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	transfer, err := uc.transferRepo.GetByID(transferID)
	if err != nil || transfer == nil {
		return nil, nil, domain.ErrNotFound
	}
	if transfer.Status != entity.TransferPending {
		return nil, nil, domain.ErrAlreadyProcessed
	}
	receiverStore, err := uc.storeRepo.GetByID(transfer.ReceiverStoreID)
	if err != nil || receiverStore == nil {
		return nil, nil, domain.ErrNotFound
	}
	if !receiverStore.IsContactPerson(userID) {
		return nil, nil, domain.ErrUnauthorized
	}
	return transfer, receiverStore, nil
}

// placeInReceiver incrementa o da de alta la marca y el lote en la tienda
// receptora, empatando por igualdad de nombre (y lote para el ProductBatch).
func (uc *TransferUseCase) placeInReceiver(
	r ports.Repos,
	batch *entity.ProductBatch,
	senderBrand *entity.Brand,
	receiverStore *entity.Store,
	transfer *entity.Transfer,
	price decimal.Decimal,
	minStock *int64,
	now time.Time,
) (*entity.Brand, *entity.ProductBatch, error) {
	receiverBrand, err := r.Brands.GetByNameAndStore(senderBrand.Name, receiverStore.ID)
	if err != nil {
		return nil, nil, err
	}
	if receiverBrand == nil {
		newMin := senderBrand.MinStock
		if minStock != nil {
			newMin = *minStock
		}
		receiverBrand = &entity.Brand{
			ID:           uuid.New().String(),
			Name:         senderBrand.Name,
			Category:     senderBrand.Category,
			MinStock:     newMin,
			Quantity:     transfer.Quantity,
			SellingUnit:  senderBrand.SellingUnit,
			SellingPrice: price,
			StoreID:      receiverStore.ID,
			EntityID:     receiverStore.EntityID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := r.Brands.Create(receiverBrand); err != nil {
			return nil, nil, err
		}
	} else {
		if err := r.Brands.AdjustQuantity(receiverBrand.ID, transfer.Quantity); err != nil {
			return nil, nil, err
		}
		if minStock != nil {
			if err := r.Brands.UpdateMinStock(receiverBrand.ID, *minStock); err != nil {
				return nil, nil, err
			}
		}
	}

	receiverBatch, err := r.Batches.GetByNameBatchAndStore(batch.Name, batch.Batch, receiverStore.ID)
	if err != nil {
		return nil, nil, err
	}
	if receiverBatch == nil {
		receiverBatch = &entity.ProductBatch{
			ID:               uuid.New().String(),
			Name:             batch.Name,
			BuyingPrice:      batch.BuyingPrice,
			Category:         batch.Category,
			Quantity:         transfer.Quantity,
			PurchaseQuantity: 0,
			SupplierID:       batch.SupplierID,
			ExpiryDate:       batch.ExpiryDate,
			PurchaseInvoice:  batch.PurchaseInvoice,
			EntityID:         receiverStore.EntityID,
			BrandID:          receiverBrand.ID,
			Batch:            batch.Batch,
			StoreID:          receiverStore.ID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := r.Batches.Create(receiverBatch); err != nil {
			return nil, nil, err
		}
	} else if err := r.Batches.AdjustQuantity(receiverBatch.ID, transfer.Quantity); err != nil {
		return nil, nil, err
	}

	return receiverBrand, receiverBatch, nil
}

// List traspasos en un rango de fechas, con filtro opcional de estado.
func (uc *TransferUseCase) List(ctx context.Context, from, to *time.Time, status string) ([]*entity.Transfer, error) {
	return uc.transferRepo.List(from, to, status)
}

// ValueReport calcula el total transferido (cantidad × precio) entre dos
// tiendas sobre los traspasos aprobados de la ventana.
func (uc *TransferUseCase) ValueReport(ctx context.Context, senderStoreID, receiverStoreID string, from, to time.Time) (*dto.TransferValueReport, error) {
	if senderStoreID == "" || receiverStoreID == "" {
		return nil, domain.ErrInvalidInput
	}
	transfers, err := uc.transferRepo.ListApprovedBetween(senderStoreID, receiverStoreID, from, to)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	items := make([]dto.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		total = total.Add(t.Price.Mul(decimal.NewFromInt(t.Quantity)))
		items = append(items, toResponse(t))
	}
	return &dto.TransferValueReport{
		SenderStoreID:   senderStoreID,
		ReceiverStoreID: receiverStoreID,
		TotalValue:      total,
		Transfers:       items,
	}, nil
}

func toResponse(t *entity.Transfer) dto.TransferResponse {
	return dto.TransferResponse{
		ID:              t.ID,
		BatchID:         t.BatchID,
		SenderStoreID:   t.SenderStoreID,
		ReceiverStoreID: t.ReceiverStoreID,
		Quantity:        t.Quantity,
		Price:           t.Price,
		Batch:           t.Batch,
		Status:          t.Status,
		CreatedAt:       t.CreatedAt,
	}
}
