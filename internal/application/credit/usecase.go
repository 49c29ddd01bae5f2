package credit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcastano/farmacia-api/internal/application/dto"
	"github.com/dcastano/farmacia-api/internal/domain"
	"github.com/dcastano/farmacia-api/internal/domain/entity"
	"github.com/dcastano/farmacia-api/internal/domain/repository"
)

// CustomerUseCase administra clientes de crédito: alta, recarga de saldo y
// bloqueo/desbloqueo. El débito por venta y el crédito por reversa viven en
// el paquete sales, dentro de sus transacciones.
type CustomerUseCase struct {
	customerRepo repository.CreditCustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CreditCustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

// Create da de alta un cliente. El saldo inicial es opcional (por defecto 0)
// y el cliente nace habilitado.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCreditCustomerRequest) (*entity.CreditCustomer, error) {
	if in.Name == "" || in.PhoneNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	balance := decimal.Zero
	if in.Balance != nil {
		balance = *in.Balance
	}
	now := time.Now()
	customer := &entity.CreditCustomer{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Balance:     balance,
		IsValid:     true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Get busca un cliente por id.
func (uc *CustomerUseCase) Get(ctx context.Context, id string) (*entity.CreditCustomer, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

// List todos los clientes de crédito.
func (uc *CustomerUseCase) List(ctx context.Context) ([]*entity.CreditCustomer, error) {
	return uc.customerRepo.List()
}

// RefillBalance acredita el saldo del cliente. El monto debe ser positivo:
// los débitos solo ocurren por venta a crédito.
func (uc *CustomerUseCase) RefillBalance(ctx context.Context, id string, amount decimal.Decimal) (*entity.CreditCustomer, error) {
	if id == "" || !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.customerRepo.AdjustBalance(id, amount); err != nil {
		return nil, err
	}
	customer.Balance = customer.Balance.Add(amount)
	return customer, nil
}

// SetValidity bloquea o habilita al cliente para nuevas ventas a crédito.
// El bloqueo no impide reversar sus ventas existentes.
func (uc *CustomerUseCase) SetValidity(ctx context.Context, id string, isValid bool) (*entity.CreditCustomer, error) {
	customer, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.customerRepo.SetValidity(id, isValid); err != nil {
		return nil, err
	}
	customer.IsValid = isValid
	return customer, nil
}

// Update actualiza los datos de contacto del cliente. El saldo no se toca por
// esta vía.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, name, email, phoneNumber string) (*entity.CreditCustomer, error) {
	if name == "" || phoneNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	customer.Name = name
	customer.Email = email
	customer.PhoneNumber = phoneNumber
	customer.UpdatedAt = time.Now()
	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}
