package entity

import "time"

// Movement es una fila inmutable del kardex (bin card): cada mutación de stock
// genera exactamente una entrada con cantidad emitida o recibida. Nunca se
// actualiza ni se borra; el saldo corriente se reconstruye plegando
// received - issued en orden de creación.
type Movement struct {
	ID               string
	BatchID          string
	BrandID          string
	Name             string
	UnitOfMeasure    string
	Category         string
	IssuedQuantity   int64
	IssuedTo         string
	ReceivedQuantity int64
	ReceivedFrom     string
	Batch            string
	ExpiryDate       time.Time
	PurchaseInvoice  string
	SupplierID       string
	StoreID          string
	Remark           string
	CreatedAt        time.Time
}
