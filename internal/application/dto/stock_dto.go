package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// IntakeRequest alta de una marca nueva con su primer lote.
type IntakeRequest struct {
	Name            string           `json:"name"`
	BuyingPrice     decimal.Decimal  `json:"buying_price"`
	SellingPrice    *decimal.Decimal `json:"selling_price,omitempty"` // nil = buying * 1.3
	SellingUnit     string           `json:"selling_unit"`
	Category        string           `json:"category"`
	Quantity        int64            `json:"quantity"`
	MinStock        int64            `json:"min_stock"`
	SupplierID      string           `json:"supplier_id"`
	ExpiryDate      time.Time        `json:"expiry_date"`
	PurchaseInvoice string           `json:"purchase_invoice,omitempty"`
	Batch           string           `json:"batch"`
	StoreID         string           `json:"store_id"`
}

// RefillRequest reposición de una marca existente con un lote nuevo.
type RefillRequest struct {
	BrandID         string           `json:"brand_id"`
	BuyingPrice     decimal.Decimal  `json:"buying_price"`
	SellingPrice    *decimal.Decimal `json:"selling_price,omitempty"`
	Quantity        int64            `json:"quantity"`
	SupplierID      string           `json:"supplier_id"`
	ExpiryDate      time.Time        `json:"expiry_date"`
	PurchaseInvoice string           `json:"purchase_invoice,omitempty"`
	Batch           string           `json:"batch"`
}

// EditQuantityRequest corrección manual de la cantidad de un lote.
type EditQuantityRequest struct {
	NewQuantity int64 `json:"new_quantity"`
}

// DamagedRequest reporte de producto dañado.
type DamagedRequest struct {
	BatchID  string `json:"batch_id"`
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason"`
}

// BrandResponse marca con su cantidad corriente.
type BrandResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	MinStock     int64           `json:"min_stock"`
	Quantity     int64           `json:"quantity"`
	SellingUnit  string          `json:"selling_unit"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	StoreID      string          `json:"store_id"`
}

// BatchResponse lote con su cantidad corriente.
type BatchResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	BuyingPrice      decimal.Decimal `json:"buying_price"`
	Category         string          `json:"category"`
	Quantity         int64           `json:"quantity"`
	PurchaseQuantity int64           `json:"purchase_quantity"`
	SupplierID       string          `json:"supplier_id"`
	ExpiryDate       time.Time       `json:"expiry_date"`
	PurchaseInvoice  string          `json:"purchase_invoice,omitempty"`
	BrandID          string          `json:"brand_id"`
	Batch            string          `json:"batch"`
	StoreID          string          `json:"store_id"`
}

// DamagedReportResponse reporte archivado de producto dañado.
type DamagedReportResponse struct {
	ID         string    `json:"id"`
	BatchID    string    `json:"batch_id"`
	Quantity   int64     `json:"quantity"`
	Reason     string    `json:"reason"`
	ReportedBy string    `json:"reported_by"`
	StoreID    string    `json:"store_id"`
	CreatedAt  time.Time `json:"created_at"`
}
