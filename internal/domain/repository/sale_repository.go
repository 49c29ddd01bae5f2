package repository

import (
	"time"

	"github.com/dcastano/farmacia-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas de contado.
// Delete solo se usa en la reversa, después de archivar la copia en
// DeletedSaleRepository dentro de la misma transacción.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	Delete(id string) error
	ListByStoreAndDate(storeID string, from, to time.Time) ([]*entity.Sale, error)
}

// CreditSaleRepository define el puerto para ventas a crédito.
type CreditSaleRepository interface {
	Create(sale *entity.CreditSale) error
	GetByID(id string) (*entity.CreditSale, error)
	Delete(id string) error
	ListByStoreAndDate(storeID string, from, to time.Time) ([]*entity.CreditSale, error)
}

// DeletedSaleRepository archiva ventas reversadas.
type DeletedSaleRepository interface {
	Create(record *entity.DeletedSale) error
	// List filtra por tienda (vacío = todas) y por rango de fecha de la venta
	// original (nil = sin filtro).
	List(storeID string, from, to *time.Time) ([]*entity.DeletedSale, error)
}
