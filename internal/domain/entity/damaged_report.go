package entity

import "time"

// DamagedReport registra producto dado de baja por daño: el stock ya fue
// descontado y el kardex tiene la salida correspondiente.
type DamagedReport struct {
	ID         string
	BatchID    string
	Quantity   int64
	Reason     string
	ReportedBy string
	StoreID    string
	CreatedAt  time.Time
}
