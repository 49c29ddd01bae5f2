package entity

import "time"

// Roles cerrados de la aplicación. El chequeo de permisos compara contra estas
// constantes, nunca contra texto libre.
const (
	RoleAdmin      = "admin"
	RolePharmacist = "pharmacist"
	RoleFinance    = "finance"
)

// User es el operador autenticado; el núcleo lo recibe ya validado y solo lo
// consulta para confirmar que la referencia existe.
type User struct {
	ID          string
	Name        string
	Email       string
	PhoneNumber string
	Role        string
	Blocked     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
