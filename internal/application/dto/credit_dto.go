package dto

import "github.com/shopspring/decimal"

// CreateCreditCustomerRequest alta de cliente de crédito.
type CreateCreditCustomerRequest struct {
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	PhoneNumber string           `json:"phone_number"`
	Balance     *decimal.Decimal `json:"balance,omitempty"` // nil = 0
}

// RefillBalanceRequest recarga de saldo (monto positivo).
type RefillBalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CreditCustomerResponse cliente de crédito con su saldo corriente.
type CreditCustomerResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	PhoneNumber string          `json:"phone_number"`
	Balance     decimal.Decimal `json:"balance"`
	IsValid     bool            `json:"is_valid"`
}
