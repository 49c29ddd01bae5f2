package transfer_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/farmacia-api/internal/application/apptest"
	"github.com/dcastano/farmacia-api/internal/application/dto"
	"github.com/dcastano/farmacia-api/internal/application/transfer"
	"github.com/dcastano/farmacia-api/internal/domain"
	"github.com/dcastano/farmacia-api/internal/domain/entity"
)

const (
	senderStoreID   = "store-centro"
	receiverStoreID = "store-norte"
	senderBrandID   = "brand-ibu"
	senderBatchID   = "batch-ibu-01"
	contactID       = "user-contacto"
	strangerID      = "user-ajeno"
)

// buildFixture siembra dos tiendas (la receptora con una persona de contacto)
// y stock de 100 unidades de ibuprofeno en la emisora, a precio de venta 20.
func buildFixture() *apptest.Fixture {
	f := apptest.NewFixture()
	now := time.Now()

	f.Stores.Seed(&entity.Store{ID: senderStoreID, Name: "Farmacia Centro"})
	f.Stores.Seed(&entity.Store{
		ID:               receiverStoreID,
		Name:             "Farmacia Norte",
		ContactPersonIDs: []string{contactID},
	})
	f.Users.Seed(&entity.User{ID: contactID, Name: "Marta", Role: entity.RoleAdmin})
	f.Brands.Seed(&entity.Brand{
		ID:           senderBrandID,
		Name:         "Ibuprofeno 400mg",
		Category:     "Analgesics",
		MinStock:     5,
		Quantity:     100,
		SellingUnit:  entity.UnitTab,
		SellingPrice: decimal.NewFromInt(20),
		StoreID:      senderStoreID,
	})
	f.Batches.Seed(&entity.ProductBatch{
		ID:               senderBatchID,
		Name:             "Ibuprofeno 400mg",
		BuyingPrice:      decimal.NewFromInt(12),
		Quantity:         100,
		PurchaseQuantity: 100,
		SupplierID:       "supplier-1",
		ExpiryDate:       now.AddDate(1, 0, 0),
		BrandID:          senderBrandID,
		Batch:            "LOT-A",
		StoreID:          senderStoreID,
	})
	return f
}

func newUseCase(f *apptest.Fixture) *transfer.TransferUseCase {
	return transfer.NewTransferUseCase(f.Tx, f.Transfers, f.Batches, f.Brands, f.Stores)
}

func requestTransfer(t *testing.T, f *apptest.Fixture, uc *transfer.TransferUseCase, qty int64) *entity.Transfer {
	t.Helper()
	tr, err := uc.Request(context.Background(), dto.TransferRequest{
		BatchID:         senderBatchID,
		SenderStoreID:   senderStoreID,
		ReceiverStoreID: receiverStoreID,
		Quantity:        qty,
	})
	require.NoError(t, err, "la solicitud válida no debe fallar")
	return tr
}

func TestRequest_CreaPendingSinTocarStock(t *testing.T) {
	f := buildFixture()
	uc := newUseCase(f)

	tr := requestTransfer(t, f, uc, 30)

	assert.Equal(t, entity.TransferPending, tr.Status)
	assert.True(t, tr.Price.Equal(decimal.NewFromInt(20)),
		"sin precio explícito se usa el precio de venta de la marca emisora")

	batch, _ := f.Batches.GetByID(senderBatchID)
	assert.Equal(t, int64(100), batch.Quantity, "la solicitud no reserva stock")
	assert.Empty(t, f.Movements.All(), "la solicitud no genera kardex")
}

func TestRequest_PrecioExplicito(t *testing.T) {
	f := buildFixture()
	uc := newUseCase(f)

	price := decimal.NewFromInt(25)
	tr, err := uc.Request(context.Background(), dto.TransferRequest{
		BatchID:         senderBatchID,
		SenderStoreID:   senderStoreID,
		ReceiverStoreID: receiverStoreID,
		Quantity:        10,
		Price:           &price,
	})
	require.NoError(t, err)
	assert.True(t, tr.Price.Equal(price))
}

func TestRequest_MismaTienda(t *testing.T) {
	f := buildFixture()
	uc := newUseCase(f)

	_, err := uc.Request(context.Background(), dto.TransferRequest{
		BatchID:         senderBatchID,
		SenderStoreID:   senderStoreID,
		ReceiverStoreID: senderStoreID,
		Quantity:        10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "emisora y receptora deben ser distintas")
}

func TestRequest_StockInsuficiente(t *testing.T) {
	f := buildFixture()
	uc := newUseCase(f)

	_, err := uc.Request(context.Background(), dto.TransferRequest{
		BatchID:         senderBatchID,
		SenderStoreID:   senderStoreID,
		ReceiverStoreID: receiverStoreID,
		Quantity:        500,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApprove_MueveStockYCierraAprobado(t *testing.T) {
	f := buildFixture()
	uc := newUseCase(f)
	tr := requestTransfer(t, f, uc, 30)

	approved, err := uc.Approve(context.Background(), contactID, tr.ID, dto.ApproveTransferRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.TransferApproved, approved.Status)

	senderBatch, _ := f.Batches.GetByID(senderBatchID)
	senderBrand, _ := f.Brands.GetByID(senderBrandID)
	assert.Equal(t, int64(70), senderBatch.Quantity, "la emisora debe quedar con 70")
	assert.Equal(t, int64(70), senderBrand.Quantity)

	receiverBrand, _ := f.Brands.GetByNameAndStore("Ibuprofeno 400mg", receiverStoreID)
	require.NotNil(t, receiverBrand, "la marca debe crearse en la receptora")
	assert.Equal(t, int64(30), receiverBrand.Quantity)
	assert.True(t, receiverBrand.SellingPrice.Equal(decimal.NewFromInt(20)))

	receiverBatch, _ := f.Batches.GetByNameBatchAndStore("Ibuprofeno 400mg", "LOT-A", receiverStoreID)
	require.NotNil(t, receiverBatch, "el lote debe crearse en la receptora")
	assert.Equal(t, int64(30), receiverBatch.Quantity)
	assert.Zero(t, receiverBatch.PurchaseQuantity,
		"el lote recibido por traspaso no registra cantidad de compra")
}

func TestApprove_DejaDosFilasDeKardex(t *testing.T) {
	f := buildFixture()
	uc := newUseCase(f)
	tr := requestTransfer(t, f, uc, 30)

	_, err := uc.Approve(context.Background(), contactID, tr.ID, dto.ApproveTransferRequest{})
	require.NoError(t, err)

	movs := f.Movements.All()
	require.Len(t, movs, 2, "salida en la emisora y entrada en la receptora")

	issue := movs[0]
	receive := movs[1]
	assert.Equal(t, senderStoreID, issue.StoreID)
	assert.Equal(t, int64(30), issue.IssuedQuantity)
	assert.Equal(t, "Farmacia Norte", issue.IssuedTo)
	assert.Equal(t, receiverStoreID, receive.StoreID)
	assert.Equal(t, int64(30), receive.ReceivedQuantity)
	assert.Equal(t, "Farmacia Centro", receive.ReceivedFrom)
}

// TestApprove_MarcaExistenteEnReceptora si la receptora ya maneja el producto
// (empate por nombre), se incrementa en vez de duplicar la marca.
func TestApprove_MarcaExistenteEnReceptora(t *testing.T) {
	f := buildFixture()
	f.Brands.Seed(&entity.Brand{
		ID:           "brand-ibu-norte",
		Name:         "Ibuprofeno 400mg",
		MinStock:     5,
		Quantity:     40,
		SellingUnit:  entity.UnitTab,
		SellingPrice: decimal.NewFromInt(22),
		StoreID:      receiverStoreID,
	})
	uc := newUseCase(f)
	tr := requestTransfer(t, f, uc, 30)

	_, err := uc.Approve(context.Background(), contactID, tr.ID, dto.ApproveTransferRequest{})
	require.NoError(t, err)

	receiverBrand, _ := f.Brands.GetByID("brand-ibu-norte")
	assert.Equal(t, int64(70), receiverBrand.Quantity, "40 existentes + 30 recibidas")
	brands, _ := f.Brands.ListByStore(receiverStoreID)
	assert.Len(t, brands, 1, "no debe duplicarse la marca en la receptora")
}

func TestApprove_NoEsPersonaDeContacto(t *testing.T) {
	f := buildFixture()
	uc := newUseCase(f)
	tr := requestTransfer(t, f, uc, 30)

	_, err := uc.Approve(context.Background(), strangerID, tr.ID, dto.ApproveTransferRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"solo una persona de contacto de la receptora puede aprobar")

	batch, _ := f.Batches.GetByID(senderBatchID)
	assert.Equal(t, int64(100), batch.Quantity)
}

// TestApprove_YaProcesado el segundo intento sobre un traspaso terminal falla
// y no vuelve a mover stock.
func TestApprove_YaProcesado(t *testing.T) {
	f := buildFixture()
	uc := newUseCase(f)
	tr := requestTransfer(t, f, uc, 30)

	_, err := uc.Approve(context.Background(), contactID, tr.ID, dto.ApproveTransferRequest{})
	require.NoError(t, err)

	_, err = uc.Approve(context.Background(), contactID, tr.ID, dto.ApproveTransferRequest{})
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)

	senderBatch, _ := f.Batches.GetByID(senderBatchID)
	assert.Equal(t, int64(70), senderBatch.Quantity, "el stock solo debe moverse una vez")
	assert.Len(t, f.Movements.All(), 2, "el kardex solo registra la primera aprobación")
}

// TestApprove_StockDrenadoTrasSolicitud si las ventas agotaron el stock entre
// la solicitud y la aprobación, el traspaso falla y nada queda a medias.
func TestApprove_StockDrenadoTrasSolicitud(t *testing.T) {
	f := buildFixture()
	uc := newUseCase(f)
	tr := requestTransfer(t, f, uc, 80)

	require.NoError(t, f.Batches.AdjustQuantity(senderBatchID, -50))
	require.NoError(t, f.Brands.AdjustQuantity(senderBrandID, -50))

	_, err := uc.Approve(context.Background(), contactID, tr.ID, dto.ApproveTransferRequest{})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, _ := f.Transfers.GetByID(tr.ID)
	assert.Equal(t, entity.TransferPending, got.Status,
		"el rollback debe dejar el traspaso pending")
	receiverBrand, _ := f.Brands.GetByNameAndStore("Ibuprofeno 400mg", receiverStoreID)
	assert.Nil(t, receiverBrand, "la receptora no debe recibir nada")
	assert.Empty(t, f.Movements.All())
}

func TestApprove_PrecioYMinimoNuevos(t *testing.T) {
	f := buildFixture()
	uc := newUseCase(f)
	tr := requestTransfer(t, f, uc, 30)

	newPrice := decimal.NewFromInt(28)
	newMin := int64(15)
	_, err := uc.Approve(context.Background(), contactID, tr.ID, dto.ApproveTransferRequest{
		NewPrice: &newPrice,
		MinStock: &newMin,
	})
	require.NoError(t, err)

	receiverBrand, _ := f.Brands.GetByNameAndStore("Ibuprofeno 400mg", receiverStoreID)
	require.NotNil(t, receiverBrand)
	assert.True(t, receiverBrand.SellingPrice.Equal(newPrice))
	assert.Equal(t, newMin, receiverBrand.MinStock)
}

func TestReject_CierraSinMoverStock(t *testing.T) {
	f := buildFixture()
	uc := newUseCase(f)
	tr := requestTransfer(t, f, uc, 30)

	rejected, err := uc.Reject(context.Background(), contactID, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferRejected, rejected.Status)

	batch, _ := f.Batches.GetByID(senderBatchID)
	assert.Equal(t, int64(100), batch.Quantity)
	assert.Empty(t, f.Movements.All())

	_, err = uc.Approve(context.Background(), contactID, tr.ID, dto.ApproveTransferRequest{})
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed, "un traspaso rechazado no puede aprobarse")
}

func TestValueReport_SumaSoloAprobados(t *testing.T) {
	f := buildFixture()
	uc := newUseCase(f)

	tr1 := requestTransfer(t, f, uc, 10)
	_, err := uc.Approve(context.Background(), contactID, tr1.ID, dto.ApproveTransferRequest{})
	require.NoError(t, err)

	tr2 := requestTransfer(t, f, uc, 20)
	_, err = uc.Reject(context.Background(), contactID, tr2.ID)
	require.NoError(t, err)

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	report, err := uc.ValueReport(context.Background(), senderStoreID, receiverStoreID, from, to)
	require.NoError(t, err)

	assert.True(t, report.TotalValue.Equal(decimal.NewFromInt(200)),
		"solo el traspaso aprobado (10 x 20) debe sumar")
	assert.Len(t, report.Transfers, 1)
}
