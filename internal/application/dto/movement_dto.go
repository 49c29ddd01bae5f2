package dto

import "time"

// MovementResponse fila del kardex con el saldo acumulado a esa fila.
type MovementResponse struct {
	ID               string    `json:"id"`
	BatchID          string    `json:"batch_id"`
	BrandID          string    `json:"brand_id"`
	Name             string    `json:"name"`
	UnitOfMeasure    string    `json:"unit_of_measure"`
	IssuedQuantity   int64     `json:"issued_quantity"`
	IssuedTo         string    `json:"issued_to,omitempty"`
	ReceivedQuantity int64     `json:"received_quantity"`
	ReceivedFrom     string    `json:"received_from,omitempty"`
	Batch            string    `json:"batch"`
	StoreID          string    `json:"store_id"`
	Remark           string    `json:"remark,omitempty"`
	Balance          int64     `json:"balance"`
	CreatedAt        time.Time `json:"created_at"`
}
