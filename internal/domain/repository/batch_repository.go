package repository

import (
	"time"

	"github.com/dcastano/farmacia-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para ProductBatch.
// AdjustQuantity sigue el mismo contrato condicional que BrandRepository.
type BatchRepository interface {
	Create(batch *entity.ProductBatch) error
	GetByID(id string) (*entity.ProductBatch, error)
	// GetByNameBatchAndStore empata por (nombre, lote, tienda) al recibir
	// traspasos hacia una tienda que quizá ya maneja el producto.
	GetByNameBatchAndStore(name, batch, storeID string) (*entity.ProductBatch, error)
	AdjustQuantity(id string, delta int64) error
	ListByBrand(brandID string) ([]*entity.ProductBatch, error)
	// ListExpiringBefore lista lotes con vencimiento anterior al límite,
	// ordenados del más próximo al más lejano. Con onlyStocked solo lotes
	// con cantidad > 0.
	ListExpiringBefore(limit time.Time, onlyStocked bool) ([]*entity.ProductBatch, error)
}
