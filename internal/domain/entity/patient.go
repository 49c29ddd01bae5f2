package entity

import "time"

// Patient es un paciente del hospital; las ventas pueden referenciarlo en vez
// de un nombre de mostrador.
type Patient struct {
	ID          string
	Name        string
	PhoneNumber string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
