package credit_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/farmacia-api/internal/application/apptest"
	"github.com/dcastano/farmacia-api/internal/application/credit"
	"github.com/dcastano/farmacia-api/internal/application/dto"
	"github.com/dcastano/farmacia-api/internal/domain"
)

func newUseCase(f *apptest.Fixture) *credit.CustomerUseCase {
	return credit.NewCustomerUseCase(f.CreditCustomers)
}

func TestCreate_SaldoCeroYHabilitado(t *testing.T) {
	f := apptest.NewFixture()
	uc := newUseCase(f)

	customer, err := uc.Create(context.Background(), dto.CreateCreditCustomerRequest{
		Name:        "Clinica Norte",
		PhoneNumber: "555-0101",
	})
	require.NoError(t, err)
	assert.True(t, customer.Balance.IsZero(), "sin saldo inicial el cliente nace en cero")
	assert.True(t, customer.IsValid, "el cliente nace habilitado")
}

func TestCreate_ConSaldoInicial(t *testing.T) {
	f := apptest.NewFixture()
	uc := newUseCase(f)

	initial := decimal.NewFromInt(500)
	customer, err := uc.Create(context.Background(), dto.CreateCreditCustomerRequest{
		Name:        "Clinica Norte",
		PhoneNumber: "555-0101",
		Balance:     &initial,
	})
	require.NoError(t, err)
	assert.True(t, customer.Balance.Equal(initial))
}

func TestCreate_SinTelefono(t *testing.T) {
	f := apptest.NewFixture()
	uc := newUseCase(f)

	_, err := uc.Create(context.Background(), dto.CreateCreditCustomerRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRefillBalance_Acredita(t *testing.T) {
	f := apptest.NewFixture()
	uc := newUseCase(f)
	customer, err := uc.Create(context.Background(), dto.CreateCreditCustomerRequest{
		Name: "Clinica Norte", PhoneNumber: "555-0101",
	})
	require.NoError(t, err)

	got, err := uc.RefillBalance(context.Background(), customer.ID, decimal.NewFromInt(300))
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(decimal.NewFromInt(300)))

	persisted, _ := f.CreditCustomers.GetByID(customer.ID)
	assert.True(t, persisted.Balance.Equal(decimal.NewFromInt(300)))
}

func TestRefillBalance_MontoNoPositivo(t *testing.T) {
	f := apptest.NewFixture()
	uc := newUseCase(f)
	customer, err := uc.Create(context.Background(), dto.CreateCreditCustomerRequest{
		Name: "Clinica Norte", PhoneNumber: "555-0101",
	})
	require.NoError(t, err)

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-50)} {
		_, err := uc.RefillBalance(context.Background(), customer.ID, amount)
		assert.ErrorIs(t, err, domain.ErrInvalidInput,
			"la recarga solo admite montos positivos")
	}
}

func TestSetValidity_BloqueaYHabilita(t *testing.T) {
	f := apptest.NewFixture()
	uc := newUseCase(f)
	customer, err := uc.Create(context.Background(), dto.CreateCreditCustomerRequest{
		Name: "Clinica Norte", PhoneNumber: "555-0101",
	})
	require.NoError(t, err)

	blocked, err := uc.SetValidity(context.Background(), customer.ID, false)
	require.NoError(t, err)
	assert.False(t, blocked.IsValid)

	enabled, err := uc.SetValidity(context.Background(), customer.ID, true)
	require.NoError(t, err)
	assert.True(t, enabled.IsValid)
}

func TestGet_Inexistente(t *testing.T) {
	f := apptest.NewFixture()
	uc := newUseCase(f)

	_, err := uc.Get(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_NoTocaSaldo(t *testing.T) {
	f := apptest.NewFixture()
	uc := newUseCase(f)
	initial := decimal.NewFromInt(400)
	customer, err := uc.Create(context.Background(), dto.CreateCreditCustomerRequest{
		Name: "Clinica Norte", PhoneNumber: "555-0101", Balance: &initial,
	})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), customer.ID, "Clinica Norte SAS", "norte@clinica.co", "555-0202")
	require.NoError(t, err)
	assert.Equal(t, "Clinica Norte SAS", updated.Name)
	assert.True(t, updated.Balance.Equal(initial), "la edición de datos no altera el saldo")
}
