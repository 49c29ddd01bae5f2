package repository

import (
	"time"

	"github.com/dcastano/farmacia-api/internal/domain/entity"
)

// DamagedRepository define el puerto para reportes de producto dañado.
type DamagedRepository interface {
	Create(report *entity.DamagedReport) error
	// List filtra por tienda (vacío = todas) dentro del rango dado.
	List(storeID string, from, to time.Time) ([]*entity.DamagedReport, error)
}
