package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traspaso entre tiendas. pending es el único estado inicial;
// approved y rejected son terminales (una sola transición permitida).
const (
	TransferPending  = "pending"
	TransferApproved = "approved"
	TransferRejected = "rejected"
)

// Transfer es una solicitud de traspaso de stock entre dos tiendas, sujeta a
// aprobación por una persona de contacto de la tienda receptora. La solicitud
// no reserva stock: la cantidad se valida de nuevo al aprobar.
type Transfer struct {
	ID              string
	BatchID         string
	SenderStoreID   string
	ReceiverStoreID string
	Quantity        int64
	Price           decimal.Decimal
	Batch           string
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
