package entity

import "time"

// Supplier es un proveedor; el núcleo solo lo consulta para validar referencias
// y anotar el origen en el kardex.
type Supplier struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
