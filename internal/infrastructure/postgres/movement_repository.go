package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dcastano/farmacia-api/internal/domain/entity"
	"github.com/dcastano/farmacia-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del kardex sobre PostgreSQL (usable con pool o tx).
// Solo inserta y consulta: la tabla no tiene UPDATE ni DELETE en ningún camino
// del código.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador del kardex. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, batch_id, brand_id, name, unit_of_measure, category, issued_quantity, issued_to, received_quantity, received_from, batch, expiry_date, purchase_invoice, supplier_id, store_id, remark, created_at`

// Append persiste una fila del kardex.
func (r *MovementRepo) Append(m *entity.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.BatchID, m.BrandID, m.Name, m.UnitOfMeasure, m.Category,
		m.IssuedQuantity, m.IssuedTo, m.ReceivedQuantity, m.ReceivedFrom,
		m.Batch, m.ExpiryDate, m.PurchaseInvoice, m.SupplierID, m.StoreID,
		m.Remark, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

// ListByStoreAndBrand lista los movimientos de una marca en una tienda en
// orden de creación ascendente, el orden que necesita el pliegue del saldo.
func (r *MovementRepo) ListByStoreAndBrand(storeID, brandID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements WHERE store_id = $1 AND brand_id = $2
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, storeID, brandID)
	if err != nil {
		return nil, fmt.Errorf("list movements by brand: %w", err)
	}
	return r.scanList(rows)
}

// ListByStore lista los movimientos de una tienda con rango de fechas opcional.
func (r *MovementRepo) ListByStore(storeID string, from, to *time.Time) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE store_id = $1`
	args := []any{storeID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY created_at, id"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by store: %w", err)
	}
	return r.scanList(rows)
}

func (r *MovementRepo) scanList(rows pgx.Rows) ([]*entity.Movement, error) {
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.BatchID, &m.BrandID, &m.Name, &m.UnitOfMeasure, &m.Category,
			&m.IssuedQuantity, &m.IssuedTo, &m.ReceivedQuantity, &m.ReceivedFrom,
			&m.Batch, &m.ExpiryDate, &m.PurchaseInvoice, &m.SupplierID, &m.StoreID,
			&m.Remark, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
