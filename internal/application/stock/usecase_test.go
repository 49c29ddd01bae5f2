package stock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/farmacia-api/internal/application/apptest"
	"github.com/dcastano/farmacia-api/internal/application/dto"
	"github.com/dcastano/farmacia-api/internal/application/stock"
	"github.com/dcastano/farmacia-api/internal/domain"
	"github.com/dcastano/farmacia-api/internal/domain/entity"
)

const (
	testStoreID    = "store-1"
	testSupplierID = "supplier-1"
	testUserID     = "user-1"
)

func buildFixture() *apptest.Fixture {
	f := apptest.NewFixture()
	f.Stores.Seed(&entity.Store{ID: testStoreID, Name: "Farmacia Centro"})
	f.Suppliers.Seed(&entity.Supplier{ID: testSupplierID, Name: "Droguería Andina"})
	f.Users.Seed(&entity.User{ID: testUserID, Name: "Ana", Role: entity.RolePharmacist})
	return f
}

func newStockUseCase(f *apptest.Fixture) *stock.StockUseCase {
	return stock.NewStockUseCase(f.Tx, f.Brands, f.Batches, f.Suppliers, f.Stores, f.Users)
}

func intakeRequest() dto.IntakeRequest {
	return dto.IntakeRequest{
		Name:        "Paracetamol 500mg",
		BuyingPrice: decimal.NewFromInt(10),
		SellingUnit: entity.UnitTab,
		Category:    "Analgesics",
		Quantity:    200,
		MinStock:    20,
		SupplierID:  testSupplierID,
		ExpiryDate:  time.Now().AddDate(2, 0, 0),
		Batch:       "LOT-P1",
		StoreID:     testStoreID,
	}
}

func TestIntake_CreaMarcaLoteYKardex(t *testing.T) {
	f := buildFixture()
	uc := newStockUseCase(f)

	brand, batch, err := uc.Intake(context.Background(), intakeRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(200), brand.Quantity)
	assert.Equal(t, int64(200), batch.Quantity)
	assert.Equal(t, int64(200), batch.PurchaseQuantity,
		"el lote debe conservar la cantidad original de compra")
	assert.Equal(t, brand.ID, batch.BrandID)

	movs := f.Movements.All()
	require.Len(t, movs, 1)
	assert.Equal(t, int64(200), movs[0].ReceivedQuantity)
	assert.Equal(t, "Droguería Andina", movs[0].ReceivedFrom,
		"el kardex debe anotar el proveedor como origen")
}

// TestIntake_PrecioVentaPorDefecto sin precio explícito se aplica el margen
// del 30% sobre el precio de compra.
func TestIntake_PrecioVentaPorDefecto(t *testing.T) {
	f := buildFixture()
	uc := newStockUseCase(f)

	brand, _, err := uc.Intake(context.Background(), intakeRequest())
	require.NoError(t, err)
	assert.True(t, brand.SellingPrice.Equal(decimal.NewFromInt(13)),
		"10 x 1.3 = 13")
}

func TestIntake_PrecioVentaExplicito(t *testing.T) {
	f := buildFixture()
	uc := newStockUseCase(f)

	in := intakeRequest()
	price := decimal.NewFromInt(18)
	in.SellingPrice = &price

	brand, _, err := uc.Intake(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, brand.SellingPrice.Equal(price))
}

func TestIntake_MarcaDuplicadaEnTienda(t *testing.T) {
	f := buildFixture()
	uc := newStockUseCase(f)

	_, _, err := uc.Intake(context.Background(), intakeRequest())
	require.NoError(t, err)

	_, _, err = uc.Intake(context.Background(), intakeRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate,
		"la misma marca en la misma tienda se repone con refill, no con intake")
}

func TestIntake_ProveedorInexistente(t *testing.T) {
	f := buildFixture()
	uc := newStockUseCase(f)

	in := intakeRequest()
	in.SupplierID = "no-existe"
	_, _, err := uc.Intake(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestIntake_RollbackSiFallaLote fuerza el fallo del alta del lote y verifica
// que tampoco queda la marca.
func TestIntake_RollbackSiFallaLote(t *testing.T) {
	f := buildFixture()
	f.Batches.CreateErr = errors.New("bd caída")
	uc := newStockUseCase(f)

	_, _, err := uc.Intake(context.Background(), intakeRequest())
	require.Error(t, err)

	brand, _ := f.Brands.GetByNameAndStore("Paracetamol 500mg", testStoreID)
	assert.Nil(t, brand, "el rollback no debe dejar la marca huérfana")
	assert.Empty(t, f.Movements.All())
}

func TestRefill_SumaLoteNuevo(t *testing.T) {
	f := buildFixture()
	uc := newStockUseCase(f)
	brand, _, err := uc.Intake(context.Background(), intakeRequest())
	require.NoError(t, err)

	batch, err := uc.Refill(context.Background(), dto.RefillRequest{
		BrandID:     brand.ID,
		BuyingPrice: decimal.NewFromInt(11),
		Quantity:    50,
		SupplierID:  testSupplierID,
		ExpiryDate:  time.Now().AddDate(1, 6, 0),
		Batch:       "LOT-P2",
	})
	require.NoError(t, err)

	got, _ := f.Brands.GetByID(brand.ID)
	assert.Equal(t, int64(250), got.Quantity, "200 + 50")
	assert.Equal(t, int64(50), batch.PurchaseQuantity)

	batches, _ := f.Batches.ListByBrand(brand.ID)
	assert.Len(t, batches, 2, "cada reposición crea un lote propio")

	movs := f.Movements.All()
	require.Len(t, movs, 2)
	assert.Equal(t, int64(50), movs[1].ReceivedQuantity)
	assert.Equal(t, "product refill", movs[1].Remark)
}

func TestRefill_ActualizaPrecioSiViene(t *testing.T) {
	f := buildFixture()
	uc := newStockUseCase(f)
	brand, _, err := uc.Intake(context.Background(), intakeRequest())
	require.NoError(t, err)

	newPrice := decimal.NewFromInt(15)
	_, err = uc.Refill(context.Background(), dto.RefillRequest{
		BrandID:      brand.ID,
		BuyingPrice:  decimal.NewFromInt(11),
		SellingPrice: &newPrice,
		Quantity:     50,
		SupplierID:   testSupplierID,
		ExpiryDate:   time.Now().AddDate(1, 0, 0),
		Batch:        "LOT-P2",
	})
	require.NoError(t, err)

	got, _ := f.Brands.GetByID(brand.ID)
	assert.True(t, got.SellingPrice.Equal(newPrice))
}

func TestEditBatchQuantity_AjustaYRegistraDiferencia(t *testing.T) {
	f := buildFixture()
	uc := newStockUseCase(f)
	brand, batch, err := uc.Intake(context.Background(), intakeRequest())
	require.NoError(t, err)

	// Corrección hacia abajo: 200 -> 180.
	_, err = uc.EditBatchQuantity(context.Background(), batch.ID, 180)
	require.NoError(t, err)

	gotBatch, _ := f.Batches.GetByID(batch.ID)
	gotBrand, _ := f.Brands.GetByID(brand.ID)
	assert.Equal(t, int64(180), gotBatch.Quantity)
	assert.Equal(t, int64(180), gotBrand.Quantity)

	movs := f.Movements.All()
	require.Len(t, movs, 2)
	edit := movs[1]
	assert.Equal(t, int64(20), edit.IssuedQuantity, "la diferencia sale como emisión")
	assert.Equal(t, "product edit", edit.Remark)

	// Corrección hacia arriba: 180 -> 190.
	_, err = uc.EditBatchQuantity(context.Background(), batch.ID, 190)
	require.NoError(t, err)
	movs = f.Movements.All()
	require.Len(t, movs, 3)
	assert.Equal(t, int64(10), movs[2].ReceivedQuantity, "la diferencia entra como recepción")
}

func TestEditBatchQuantity_SinCambio(t *testing.T) {
	f := buildFixture()
	uc := newStockUseCase(f)
	_, batch, err := uc.Intake(context.Background(), intakeRequest())
	require.NoError(t, err)

	_, err = uc.EditBatchQuantity(context.Background(), batch.ID, 200)
	require.NoError(t, err)
	assert.Len(t, f.Movements.All(), 1, "sin diferencia no hay fila de kardex")
}

func TestEditBatchQuantity_NegativaInvalida(t *testing.T) {
	f := buildFixture()
	uc := newStockUseCase(f)
	_, batch, err := uc.Intake(context.Background(), intakeRequest())
	require.NoError(t, err)

	_, err = uc.EditBatchQuantity(context.Background(), batch.ID, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReportDamaged_DescuentaYArchiva(t *testing.T) {
	f := buildFixture()
	uc := newStockUseCase(f)
	brand, batch, err := uc.Intake(context.Background(), intakeRequest())
	require.NoError(t, err)

	report, err := uc.ReportDamaged(context.Background(), testUserID, dto.DamagedRequest{
		BatchID:  batch.ID,
		Quantity: 15,
		Reason:   "caja mojada",
	})
	require.NoError(t, err)
	assert.Equal(t, testUserID, report.ReportedBy)

	gotBatch, _ := f.Batches.GetByID(batch.ID)
	gotBrand, _ := f.Brands.GetByID(brand.ID)
	assert.Equal(t, int64(185), gotBatch.Quantity)
	assert.Equal(t, int64(185), gotBrand.Quantity)

	require.Len(t, f.Damaged.All(), 1)
	movs := f.Movements.All()
	require.Len(t, movs, 2)
	assert.Equal(t, int64(15), movs[1].IssuedQuantity)
	assert.Equal(t, "damaged report", movs[1].IssuedTo)
	assert.Equal(t, "Damaged", movs[1].Remark)
}

func TestReportDamaged_MasQueElLote(t *testing.T) {
	f := buildFixture()
	uc := newStockUseCase(f)
	_, batch, err := uc.Intake(context.Background(), intakeRequest())
	require.NoError(t, err)

	_, err = uc.ReportDamaged(context.Background(), testUserID, dto.DamagedRequest{
		BatchID:  batch.ID,
		Quantity: 500,
		Reason:   "caja mojada",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, f.Damaged.All(), "el reporte no debe archivarse si falla el descuento")
}
