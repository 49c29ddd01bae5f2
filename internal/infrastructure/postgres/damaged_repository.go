package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dcastano/farmacia-api/internal/domain/entity"
	"github.com/dcastano/farmacia-api/internal/domain/repository"
)

var _ repository.DamagedRepository = (*DamagedRepo)(nil)

// DamagedRepo implementación de DamagedRepository sobre PostgreSQL (usable con pool o tx).
type DamagedRepo struct {
	q Querier
}

// NewDamagedRepository construye el adaptador de reportes de daño. Pasar pool o tx (Querier).
func NewDamagedRepository(q Querier) *DamagedRepo {
	return &DamagedRepo{q: q}
}

const damagedColumns = `id, batch_id, quantity, reason, reported_by, store_id, created_at`

// Create archiva un reporte de daño.
func (r *DamagedRepo) Create(d *entity.DamagedReport) error {
	query := `
		INSERT INTO damaged_reports (` + damagedColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.BatchID, d.Quantity, d.Reason, d.ReportedBy, d.StoreID, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert damaged report: %w", err)
	}
	return nil
}

// List filtra por tienda (vacío = todas) dentro del rango dado.
func (r *DamagedRepo) List(storeID string, from, to time.Time) ([]*entity.DamagedReport, error) {
	query := `SELECT ` + damagedColumns + ` FROM damaged_reports WHERE created_at >= $1 AND created_at <= $2`
	args := []any{from, to}
	if storeID != "" {
		query += ` AND store_id = $3`
		args = append(args, storeID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list damaged reports: %w", err)
	}
	defer rows.Close()
	var list []*entity.DamagedReport
	for rows.Next() {
		var d entity.DamagedReport
		if err := rows.Scan(
			&d.ID, &d.BatchID, &d.Quantity, &d.Reason, &d.ReportedBy, &d.StoreID, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan damaged report: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
