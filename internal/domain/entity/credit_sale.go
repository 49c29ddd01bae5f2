package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una venta a crédito.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// CreditSale es una venta contra el saldo de un CreditCustomer. Nace unpaid y
// debita el saldo del cliente por TotalPrice en la misma transacción que
// descuenta el stock.
type CreditSale struct {
	ID               string
	BatchID          string
	UserID           string
	Quantity         int64
	TotalPrice       decimal.Decimal
	PatientID        string
	CustomerName     string
	StoreID          string
	CreditCustomerID string
	PaymentStatus    string
	CreatedAt        time.Time
}
