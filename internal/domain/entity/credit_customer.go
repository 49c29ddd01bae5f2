package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditCustomer es un cliente con saldo corriente: compra a crédito debita,
// recarga o reversa de venta acredita. IsValid en false bloquea nuevas ventas
// a crédito (las reversas siguen permitidas).
type CreditCustomer struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	Balance     decimal.Decimal
	IsValid     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
