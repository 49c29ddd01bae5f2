package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dcastano/farmacia-api/internal/domain/entity"
)

// CreditCustomerRepository define el puerto para clientes de crédito.
// AdjustBalance aplica el delta (negativo debita, positivo acredita) como una
// sola operación sobre el saldo corriente.
type CreditCustomerRepository interface {
	Create(customer *entity.CreditCustomer) error
	GetByID(id string) (*entity.CreditCustomer, error)
	List() ([]*entity.CreditCustomer, error)
	AdjustBalance(id string, delta decimal.Decimal) error
	SetValidity(id string, isValid bool) error
	Update(customer *entity.CreditCustomer) error
}
