package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale es una venta de contado ya aplicada: el stock fue descontado y el
// kardex tiene su entrada de salida. PatientID o CustomerName identifica al
// cliente (al menos uno).
type Sale struct {
	ID           string
	BatchID      string
	UserID       string
	Quantity     int64
	TotalPrice   decimal.Decimal
	PatientID    string
	CustomerName string
	StoreID      string
	CreatedAt    time.Time
}
