package sales_test

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
	"github.com/dcastano/farmacia-api/internal/application/sales"
	"github.com/dcastano/farmacia-api/internal/domain"
	"github.com/dcastano/farmacia-api/internal/domain/entity"
)

const (
	testStoreID    = "store-1"
	testBrandID    = "brand-amoxi"
	testBatchID    = "batch-amoxi-01"
	testUserID     = "user-vendedor"
	testPatientID  = "patient-1"
	testCustomerID = "customer-credito"
)

// buildFixture siembra una tienda con una marca de 100 unidades a precio 50,
// un lote de 100, un vendedor, un paciente y un cliente de crédito habilitado
// con saldo 1000.
func buildFixture() *apptest.Fixture {
	f := apptest.NewFixture()
	now := time.Now()

	f.Stores.Seed(&entity.Store{ID: testStoreID, Name: "Farmacia Centro"})
	f.Users.Seed(&entity.User{ID: testUserID, Name: "Ana", Role: entity.RolePharmacist})
	f.Patients.Seed(&entity.Patient{ID: testPatientID, Name: "Luis", IsActive: true})
	f.Brands.Seed(&entity.Brand{
		ID:           testBrandID,
		Name:         "Amoxicilina 500mg",
		Category:     "Antibiotics",
		MinStock:     10,
		Quantity:     100,
		SellingUnit:  entity.UnitTab,
		SellingPrice: decimal.NewFromInt(50),
		StoreID:      testStoreID,
	})
	f.Batches.Seed(&entity.ProductBatch{
		ID:               testBatchID,
		Name:             "Amoxicilina 500mg",
		BuyingPrice:      decimal.NewFromInt(30),
		Quantity:         100,
		PurchaseQuantity: 100,
		SupplierID:       "supplier-1",
		ExpiryDate:       now.AddDate(1, 0, 0),
		BrandID:          testBrandID,
		Batch:            "LOT-01",
		StoreID:          testStoreID,
	})
	f.CreditCustomers.Seed(&entity.CreditCustomer{
		ID:          testCustomerID,
		Name:        "Clinica Norte",
		PhoneNumber: "555-0101",
		Balance:     decimal.NewFromInt(1000),
		IsValid:     true,
	})
	return f
}

func newSellUseCase(f *apptest.Fixture) *sales.SellUseCase {
	return sales.NewSellUseCase(f.Tx, f.Batches, f.Brands, f.Users, f.Patients, f.CreditCustomers)
}

func TestSell_DescuentaStockYRegistraKardex(t *testing.T) {
	f := buildFixture()
	uc := newSellUseCase(f)

	resp, err := uc.Sell(context.Background(), testUserID, dto.SellRequest{
		BatchID:   testBatchID,
		Quantity:  8,
		PatientID: testPatientID,
	})
	require.NoError(t, err, "la venta válida no debe fallar")

	assert.True(t, resp.TotalPrice.Equal(decimal.NewFromInt(400)),
		"el total debe ser precio de venta por cantidad (50 x 8)")

	batch, _ := f.Batches.GetByID(testBatchID)
	brand, _ := f.Brands.GetByID(testBrandID)
	assert.Equal(t, int64(92), batch.Quantity, "el lote debe quedar con 92 unidades")
	assert.Equal(t, int64(92), brand.Quantity, "la marca debe quedar con 92 unidades")

	movs := f.Movements.All()
	require.Len(t, movs, 1, "la venta debe dejar exactamente una fila de kardex")
	assert.Equal(t, int64(8), movs[0].IssuedQuantity)
	assert.Equal(t, "Sale", movs[0].IssuedTo)
	assert.Zero(t, movs[0].ReceivedQuantity)
}

func TestSell_StockInsuficiente(t *testing.T) {
	f := buildFixture()
	uc := newSellUseCase(f)

	_, err := uc.Sell(context.Background(), testUserID, dto.SellRequest{
		BatchID:   testBatchID,
		Quantity:  150,
		PatientID: testPatientID,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	batch, _ := f.Batches.GetByID(testBatchID)
	assert.Equal(t, int64(100), batch.Quantity, "el stock no debe cambiar si la venta falla")
	assert.Empty(t, f.Movements.All(), "no debe haber kardex de una venta fallida")
}

func TestSell_CantidadInvalida(t *testing.T) {
	f := buildFixture()
	uc := newSellUseCase(f)

	for _, qty := range []int64{0, -5} {
		_, err := uc.Sell(context.Background(), testUserID, dto.SellRequest{
			BatchID:   testBatchID,
			Quantity:  qty,
			PatientID: testPatientID,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d debe rechazarse", qty)
	}
}

func TestSell_SinPacienteNiNombre(t *testing.T) {
	f := buildFixture()
	uc := newSellUseCase(f)

	_, err := uc.Sell(context.Background(), testUserID, dto.SellRequest{
		BatchID:  testBatchID,
		Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"la venta necesita paciente o nombre de mostrador")
}

func TestSell_PrecioNoConfigurado(t *testing.T) {
	f := buildFixture()
	brand, _ := f.Brands.GetByID(testBrandID)
	brand.SellingPrice = decimal.Zero
	uc := newSellUseCase(f)

	_, err := uc.Sell(context.Background(), testUserID, dto.SellRequest{
		BatchID:   testBatchID,
		Quantity:  1,
		PatientID: testPatientID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestSell_LoteInexistente(t *testing.T) {
	f := buildFixture()
	uc := newSellUseCase(f)

	_, err := uc.Sell(context.Background(), testUserID, dto.SellRequest{
		BatchID:   "no-existe",
		Quantity:  1,
		PatientID: testPatientID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestSell_RollbackSiFallaKardex fuerza el fallo del Append y verifica que el
// stock descontado dentro de la transacción vuelve a su valor original.
func TestSell_RollbackSiFallaKardex(t *testing.T) {
	f := buildFixture()
	f.Movements.AppendErr = errors.New("kardex caído")
	uc := newSellUseCase(f)

	_, err := uc.Sell(context.Background(), testUserID, dto.SellRequest{
		BatchID:   testBatchID,
		Quantity:  8,
		PatientID: testPatientID,
	})
	require.Error(t, err)

	batch, _ := f.Batches.GetByID(testBatchID)
	brand, _ := f.Brands.GetByID(testBrandID)
	assert.Equal(t, int64(100), batch.Quantity, "el rollback debe restaurar el lote")
	assert.Equal(t, int64(100), brand.Quantity, "el rollback debe restaurar la marca")
	sales, _ := f.Sales.ListByStoreAndDate("", time.Time{}, time.Now().Add(time.Hour))
	assert.Empty(t, sales, "el rollback no debe dejar la venta persistida")
}

func TestSellOnCredit_DebitaSaldoDelCliente(t *testing.T) {
	f := buildFixture()
	uc := newSellUseCase(f)

	resp, err := uc.SellOnCredit(context.Background(), testUserID, dto.CreditSellRequest{
		BatchID:          testBatchID,
		Quantity:         4,
		PatientID:        testPatientID,
		CreditCustomerID: testCustomerID,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentUnpaid, resp.PaymentStatus, "la venta a crédito nace unpaid")

	customer, _ := f.CreditCustomers.GetByID(testCustomerID)
	assert.True(t, customer.Balance.Equal(decimal.NewFromInt(800)),
		"el saldo debe debitarse por el total (1000 - 200)")

	movs := f.Movements.All()
	require.Len(t, movs, 1)
	assert.Equal(t, "Credit sale: Clinica Norte", movs[0].IssuedTo)
}

func TestSellOnCredit_ClienteBloqueado(t *testing.T) {
	f := buildFixture()
	_ = f.CreditCustomers.SetValidity(testCustomerID, false)
	uc := newSellUseCase(f)

	_, err := uc.SellOnCredit(context.Background(), testUserID, dto.CreditSellRequest{
		BatchID:          testBatchID,
		Quantity:         4,
		PatientID:        testPatientID,
		CreditCustomerID: testCustomerID,
	})
	assert.ErrorIs(t, err, domain.ErrCustomerBlocked)

	batch, _ := f.Batches.GetByID(testBatchID)
	customer, _ := f.CreditCustomers.GetByID(testCustomerID)
	assert.Equal(t, int64(100), batch.Quantity, "el bloqueo no debe tocar el stock")
	assert.True(t, customer.Balance.Equal(decimal.NewFromInt(1000)),
		"el bloqueo no debe tocar el saldo")
	assert.Zero(t, f.Tx.Calls, "no debe abrirse transacción para un cliente bloqueado")
}

func TestSellOnCredit_ClienteInexistente(t *testing.T) {
	f := buildFixture()
	uc := newSellUseCase(f)

	_, err := uc.SellOnCredit(context.Background(), testUserID, dto.CreditSellRequest{
		BatchID:          testBatchID,
		Quantity:         1,
		PatientID:        testPatientID,
		CreditCustomerID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestSellOnCredit_RollbackRestauraSaldo fuerza el fallo del kardex y verifica
// que ni el stock ni el saldo del cliente quedan tocados.
func TestSellOnCredit_RollbackRestauraSaldo(t *testing.T) {
	f := buildFixture()
	f.Movements.AppendErr = errors.New("kardex caído")
	uc := newSellUseCase(f)

	_, err := uc.SellOnCredit(context.Background(), testUserID, dto.CreditSellRequest{
		BatchID:          testBatchID,
		Quantity:         4,
		PatientID:        testPatientID,
		CreditCustomerID: testCustomerID,
	})
	require.Error(t, err)

	batch, _ := f.Batches.GetByID(testBatchID)
	customer, _ := f.CreditCustomers.GetByID(testCustomerID)
	assert.Equal(t, int64(100), batch.Quantity)
	assert.True(t, customer.Balance.Equal(decimal.NewFromInt(1000)),
		"el rollback debe restaurar el saldo del cliente")
}
