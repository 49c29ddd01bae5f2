package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SellRequest body para POST /api/sales/sell. PatientID o CustomerName: al
// menos uno.
type SellRequest struct {
	BatchID      string `json:"batch_id"`
	Quantity     int64  `json:"quantity"`
	PatientID    string `json:"patient_id,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`
}

// CreditSellRequest body para POST /api/credit-sales/sell.
type CreditSellRequest struct {
	BatchID          string `json:"batch_id"`
	Quantity         int64  `json:"quantity"`
	PatientID        string `json:"patient_id,omitempty"`
	CustomerName     string `json:"customer_name,omitempty"`
	CreditCustomerID string `json:"credit_customer_id"`
}

// SaleResponse venta creada, con el total calculado.
type SaleResponse struct {
	ID               string          `json:"id"`
	BatchID          string          `json:"batch_id"`
	UserID           string          `json:"user_id"`
	Quantity         int64           `json:"quantity"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	PatientID        string          `json:"patient_id,omitempty"`
	CustomerName     string          `json:"customer_name,omitempty"`
	StoreID          string          `json:"store_id"`
	CreditCustomerID string          `json:"credit_customer_id,omitempty"`
	PaymentStatus    string          `json:"payment_status,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// DeleteSaleRequest body para la reversa de una venta.
type DeleteSaleRequest struct {
	Reason string `json:"reason"`
}

// DeletedSaleResponse registro archivado de una venta reversada.
type DeletedSaleResponse struct {
	ID               string    `json:"id"`
	BatchID          string    `json:"batch_id"`
	UserID           string    `json:"user_id"`
	Quantity         int64     `json:"quantity"`
	Reason           string    `json:"reason"`
	DeletedBy        string    `json:"deleted_by"`
	OriginalSaleDate time.Time `json:"original_sale_date"`
	StoreID          string    `json:"store_id"`
}
