package repository

import (
	"time"

	"github.com/dcastano/farmacia-api/internal/domain/entity"
)

// MovementRepository es el puerto del kardex. Solo existe inserción y
// consulta: los movimientos son inmutables por diseño y el saldo se
// reconstruye plegando la secuencia ordenada (domain/stock.RunningBalance).
type MovementRepository interface {
	Append(movement *entity.Movement) error
	// ListByStoreAndBrand devuelve los movimientos ordenados por fecha de
	// creación ascendente, aptos para reconstruir el saldo.
	ListByStoreAndBrand(storeID, brandID string) ([]*entity.Movement, error)
	ListByStore(storeID string, from, to *time.Time) ([]*entity.Movement, error)
}
