package entity

import "time"

// DeletedSale es la copia de archivo de una venta reversada: quién la reversó,
// por qué, y cuándo ocurrió la venta original. La venta original se elimina;
// el rastro de auditoría queda aquí y en el kardex (entrada de devolución).
type DeletedSale struct {
	ID               string
	BatchID          string
	UserID           string
	Quantity         int64
	Reason           string
	DeletedBy        string
	OriginalSaleDate time.Time
	StoreID          string
	CreatedAt        time.Time
}
