package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductBatch es un lote comprado de una marca: precio de compra, vencimiento
// y código de lote propios. Quantity es la cantidad restante del lote (>= 0);
// PurchaseQuantity conserva la cantidad original de la compra.
type ProductBatch struct {
	ID               string
	Name             string
	BuyingPrice      decimal.Decimal
	Category         string
	Quantity         int64
	PurchaseQuantity int64
	SupplierID       string
	ExpiryDate       time.Time
	PurchaseInvoice  string
	EntityID         string
	BrandID          string
	Batch            string
	StoreID          string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
