package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dcastano/farmacia-api/internal/domain"
	"github.com/dcastano/farmacia-api/internal/domain/entity"
	"github.com/dcastano/farmacia-api/internal/domain/repository"
)

var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo implementación de BrandRepository sobre PostgreSQL (usable con pool o tx).
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador de marcas. Pasar pool o tx (Querier).
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

const brandColumns = `id, name, category, min_stock, quantity, selling_unit, selling_price, store_id, entity_id, created_at, updated_at`

// Create persiste una marca nueva. El par (name, store_id) es único.
func (r *BrandRepo) Create(brand *entity.Brand) error {
	query := `
		INSERT INTO brands (` + brandColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		brand.ID, brand.Name, brand.Category, brand.MinStock, brand.Quantity,
		brand.SellingUnit, brand.SellingPrice, brand.StoreID, brand.EntityID,
		brand.CreatedAt, brand.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

// GetByID obtiene una marca por ID.
func (r *BrandRepo) GetByID(id string) (*entity.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByNameAndStore busca por igualdad de nombre dentro de una tienda.
func (r *BrandRepo) GetByNameAndStore(name, storeID string) (*entity.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE name = $1 AND store_id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, name, storeID))
}

// AdjustQuantity aplica el delta como una sola operación condicional: el WHERE
// garantiza que la cantidad resultante nunca queda negativa, sin importar
// cuántas ventas concurran sobre la misma fila.
func (r *BrandRepo) AdjustQuantity(id string, delta int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE brands SET quantity = quantity + $2, updated_at = now()
		 WHERE id = $1 AND quantity + $2 >= 0`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust brand quantity: %w", err)
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

// UpdatePrice actualiza el precio de venta.
func (r *BrandRepo) UpdatePrice(id string, price decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE brands SET selling_price = $2, updated_at = now() WHERE id = $1`,
		id, price,
	)
	if err != nil {
		return fmt.Errorf("update brand price: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateMinStock actualiza el mínimo de stock.
func (r *BrandRepo) UpdateMinStock(id string, minStock int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE brands SET min_stock = $2, updated_at = now() WHERE id = $1`,
		id, minStock,
	)
	if err != nil {
		return fmt.Errorf("update brand min stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByStore lista las marcas de una tienda.
func (r *BrandRepo) ListByStore(storeID string) ([]*entity.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE store_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list brands by store: %w", err)
	}
	return r.scanList(rows)
}

// ListStockouts lista marcas con quantity <= min_stock; storeID vacío = todas.
func (r *BrandRepo) ListStockouts(storeID string) ([]*entity.Brand, error) {
	query := `SELECT ` + brandColumns + ` FROM brands WHERE quantity <= min_stock`
	args := []any{}
	if storeID != "" {
		query += ` AND store_id = $1`
		args = append(args, storeID)
	}
	query += ` ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stockouts: %w", err)
	}
	return r.scanList(rows)
}

func (r *BrandRepo) exists(id string) (bool, error) {
	var found bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM brands WHERE id = $1)`, id,
	).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("brand exists: %w", err)
	}
	return found, nil
}

func (r *BrandRepo) scanOne(row pgx.Row) (*entity.Brand, error) {
	var b entity.Brand
	err := row.Scan(
		&b.ID, &b.Name, &b.Category, &b.MinStock, &b.Quantity,
		&b.SellingUnit, &b.SellingPrice, &b.StoreID, &b.EntityID,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

func (r *BrandRepo) scanList(rows pgx.Rows) ([]*entity.Brand, error) {
	defer rows.Close()
	var list []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Category, &b.MinStock, &b.Quantity,
			&b.SellingUnit, &b.SellingPrice, &b.StoreID, &b.EntityID,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
