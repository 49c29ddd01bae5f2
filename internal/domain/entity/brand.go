package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de venta permitidas para una marca.
const (
	UnitPcs   = "Pcs"
	UnitVials = "Vials"
	UnitAmp   = "Amp"
	UnitTab   = "Tab"
	UnitPk    = "Pk"
	UnitBoxes = "Boxes"
	UnitStr   = "Str"
)

// Brand es el agregado de stock por tienda para un producto con nombre propio.
// Quantity es la cantidad corriente de la marca en la tienda y debe ser siempre >= 0;
// por convención equivale a la suma de las cantidades de sus lotes (ProductBatch).
type Brand struct {
	ID           string
	Name         string
	Category     string
	MinStock     int64
	Quantity     int64
	SellingUnit  string
	SellingPrice decimal.Decimal
	StoreID      string
	EntityID     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockedOut indica si la marca está en punto de quiebre (quantity <= minStock).
func (b *Brand) StockedOut() bool {
	return b.Quantity <= b.MinStock
}
