package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dcastano/farmacia-api/internal/domain"
	"github.com/dcastano/farmacia-api/internal/domain/entity"
	"github.com/dcastano/farmacia-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

const batchColumns = `id, name, buying_price, category, quantity, purchase_quantity, supplier_id, expiry_date, purchase_invoice, entity_id, brand_id, batch, store_id, created_at, updated_at`

// Create persiste un lote nuevo.
func (r *BatchRepo) Create(batch *entity.ProductBatch) error {
	query := `
		INSERT INTO product_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.Name, batch.BuyingPrice, batch.Category, batch.Quantity,
		batch.PurchaseQuantity, batch.SupplierID, batch.ExpiryDate, batch.PurchaseInvoice,
		batch.EntityID, batch.BrandID, batch.Batch, batch.StoreID,
		batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *BatchRepo) GetByID(id string) (*entity.ProductBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM product_batches WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByNameBatchAndStore empata por (nombre, lote, tienda).
func (r *BatchRepo) GetByNameBatchAndStore(name, batch, storeID string) (*entity.ProductBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM product_batches WHERE name = $1 AND batch = $2 AND store_id = $3`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name, batch, storeID))
}

// AdjustQuantity aplica el delta con la misma guarda condicional que las
// marcas: ninguna carrera puede dejar el lote en negativo.
func (r *BatchRepo) AdjustQuantity(id string, delta int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE product_batches SET quantity = quantity + $2, updated_at = now()
		 WHERE id = $1 AND quantity + $2 >= 0`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust batch quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		exists, err := r.exists(id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

// ListByBrand lista los lotes de una marca.
func (r *BatchRepo) ListByBrand(brandID string) ([]*entity.ProductBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM product_batches WHERE brand_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, brandID)
	if err != nil {
		return nil, fmt.Errorf("list batches by brand: %w", err)
	}
	return r.scanList(rows)
}

// ListExpiringBefore lista lotes con vencimiento anterior al límite, del más
// próximo al más lejano. Con onlyStocked excluye lotes en cero.
func (r *BatchRepo) ListExpiringBefore(limit time.Time, onlyStocked bool) ([]*entity.ProductBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM product_batches WHERE expiry_date < $1`
	if onlyStocked {
		query += ` AND quantity > 0`
	}
	query += ` ORDER BY expiry_date`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list expiring batches: %w", err)
	}
	return r.scanList(rows)
}

func (r *BatchRepo) exists(id string) (bool, error) {
	var found bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM product_batches WHERE id = $1)`, id,
	).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("batch exists: %w", err)
	}
	return found, nil
}

func (r *BatchRepo) scanOne(row pgx.Row) (*entity.ProductBatch, error) {
	var b entity.ProductBatch
	err := row.Scan(
		&b.ID, &b.Name, &b.BuyingPrice, &b.Category, &b.Quantity,
		&b.PurchaseQuantity, &b.SupplierID, &b.ExpiryDate, &b.PurchaseInvoice,
		&b.EntityID, &b.BrandID, &b.Batch, &b.StoreID,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

func (r *BatchRepo) scanList(rows pgx.Rows) ([]*entity.ProductBatch, error) {
	defer rows.Close()
	var list []*entity.ProductBatch
	for rows.Next() {
		var b entity.ProductBatch
		if err := rows.Scan(
			&b.ID, &b.Name, &b.BuyingPrice, &b.Category, &b.Quantity,
			&b.PurchaseQuantity, &b.SupplierID, &b.ExpiryDate, &b.PurchaseInvoice,
			&b.EntityID, &b.BrandID, &b.Batch, &b.StoreID,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
