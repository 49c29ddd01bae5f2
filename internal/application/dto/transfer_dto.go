package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferRequest body para solicitar un traspaso entre tiendas. Price nil
// usa el precio de venta vigente de la marca emisora.
type TransferRequest struct {
	BatchID         string           `json:"batch_id"`
	SenderStoreID   string           `json:"sender_store_id"`
	ReceiverStoreID string           `json:"receiver_store_id"`
	Quantity        int64            `json:"quantity"`
	Price           *decimal.Decimal `json:"price,omitempty"`
}

// ApproveTransferRequest body para aprobar: permite fijar precio y mínimo de
// stock en la tienda receptora.
type ApproveTransferRequest struct {
	NewPrice *decimal.Decimal `json:"new_price,omitempty"`
	MinStock *int64           `json:"min_stock,omitempty"`
}

// TransferResponse traspaso tal como queda persistido.
type TransferResponse struct {
	ID              string          `json:"id"`
	BatchID         string          `json:"batch_id"`
	SenderStoreID   string          `json:"sender_store_id"`
	ReceiverStoreID string          `json:"receiver_store_id"`
	Quantity        int64           `json:"quantity"`
	Price           decimal.Decimal `json:"price"`
	Batch           string          `json:"batch"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TransferValueReport total transferido entre dos tiendas en una ventana:
// suma de cantidad × precio sobre los traspasos aprobados.
type TransferValueReport struct {
	SenderStoreID   string             `json:"sender_store_id"`
	ReceiverStoreID string             `json:"receiver_store_id"`
	TotalValue      decimal.Decimal    `json:"total_value"`
	Transfers       []TransferResponse `json:"transfers"`
}
