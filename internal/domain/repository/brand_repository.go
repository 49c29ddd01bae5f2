package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dcastano/farmacia-api/internal/domain/entity"
)

// BrandRepository define el puerto de persistencia para Brand.
// AdjustQuantity es la única vía por la que cambia Quantity: aplica el delta
// como una sola operación condicional (quantity + delta >= 0) y retorna
// domain.ErrInsufficientStock si el resultado quedaría negativo.
type BrandRepository interface {
	Create(brand *entity.Brand) error
	GetByID(id string) (*entity.Brand, error)
	// GetByNameAndStore busca por igualdad de nombre dentro de la tienda;
	// es la clave de empate usada al recibir traspasos.
	GetByNameAndStore(name, storeID string) (*entity.Brand, error)
	AdjustQuantity(id string, delta int64) error
	UpdatePrice(id string, price decimal.Decimal) error
	UpdateMinStock(id string, minStock int64) error
	ListByStore(storeID string) ([]*entity.Brand, error)
	// ListStockouts lista marcas con quantity <= minStock; storeID vacío = todas.
	ListStockouts(storeID string) ([]*entity.Brand, error)
}
