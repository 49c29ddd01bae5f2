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

var _ repository.SaleRepository = (*SaleRepo)(nil)
var _ repository.CreditSaleRepository = (*CreditSaleRepo)(nil)
var _ repository.DeletedSaleRepository = (*DeletedSaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas de contado. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, batch_id, user_id, quantity, total_price, patient_id, customer_name, store_id, created_at`

// Create persiste una venta de contado.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.BatchID, s.UserID, s.Quantity, s.TotalPrice,
		nullable(s.PatientID), s.CustomerName, s.StoreID, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	var patientID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.BatchID, &s.UserID, &s.Quantity, &s.TotalPrice,
		&patientID, &s.CustomerName, &s.StoreID, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if patientID != nil {
		s.PatientID = *patientID
	}
	return &s, nil
}

// Delete elimina la venta. Si la fila ya no existe (otra reversa ganó la
// carrera) retorna domain.ErrNotFound; quien llama aborta la transacción.
func (r *SaleRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByStoreAndDate lista ventas en el rango; storeID vacío = todas.
func (r *SaleRepo) ListByStoreAndDate(storeID string, from, to time.Time) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE created_at >= $1 AND created_at <= $2`
	args := []any{from, to}
	if storeID != "" {
		query += ` AND store_id = $3`
		args = append(args, storeID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var patientID *string
		if err := rows.Scan(
			&s.ID, &s.BatchID, &s.UserID, &s.Quantity, &s.TotalPrice,
			&patientID, &s.CustomerName, &s.StoreID, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if patientID != nil {
			s.PatientID = *patientID
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// CreditSaleRepo implementación de CreditSaleRepository sobre PostgreSQL (usable con pool o tx).
type CreditSaleRepo struct {
	q Querier
}

// NewCreditSaleRepository construye el adaptador de ventas a crédito. Pasar pool o tx (Querier).
func NewCreditSaleRepository(q Querier) *CreditSaleRepo {
	return &CreditSaleRepo{q: q}
}

const creditSaleColumns = `id, batch_id, user_id, quantity, total_price, patient_id, customer_name, store_id, credit_customer_id, payment_status, created_at`

// Create persiste una venta a crédito.
func (r *CreditSaleRepo) Create(s *entity.CreditSale) error {
	query := `
		INSERT INTO credit_sales (` + creditSaleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.BatchID, s.UserID, s.Quantity, s.TotalPrice,
		nullable(s.PatientID), s.CustomerName, s.StoreID,
		s.CreditCustomerID, s.PaymentStatus, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert credit sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta a crédito por ID.
func (r *CreditSaleRepo) GetByID(id string) (*entity.CreditSale, error) {
	query := `SELECT ` + creditSaleColumns + ` FROM credit_sales WHERE id = $1`
	var s entity.CreditSale
	var patientID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.BatchID, &s.UserID, &s.Quantity, &s.TotalPrice,
		&patientID, &s.CustomerName, &s.StoreID,
		&s.CreditCustomerID, &s.PaymentStatus, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit sale: %w", err)
	}
	if patientID != nil {
		s.PatientID = *patientID
	}
	return &s, nil
}

// Delete elimina la venta a crédito; mismo contrato condicional que SaleRepo.
func (r *CreditSaleRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM credit_sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete credit sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByStoreAndDate lista ventas a crédito en el rango; storeID vacío = todas.
func (r *CreditSaleRepo) ListByStoreAndDate(storeID string, from, to time.Time) ([]*entity.CreditSale, error) {
	query := `SELECT ` + creditSaleColumns + ` FROM credit_sales WHERE created_at >= $1 AND created_at <= $2`
	args := []any{from, to}
	if storeID != "" {
		query += ` AND store_id = $3`
		args = append(args, storeID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list credit sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.CreditSale
	for rows.Next() {
		var s entity.CreditSale
		var patientID *string
		if err := rows.Scan(
			&s.ID, &s.BatchID, &s.UserID, &s.Quantity, &s.TotalPrice,
			&patientID, &s.CustomerName, &s.StoreID,
			&s.CreditCustomerID, &s.PaymentStatus, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan credit sale: %w", err)
		}
		if patientID != nil {
			s.PatientID = *patientID
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// DeletedSaleRepo archivo de ventas reversadas sobre PostgreSQL (usable con pool o tx).
type DeletedSaleRepo struct {
	q Querier
}

// NewDeletedSaleRepository construye el adaptador del archivo. Pasar pool o tx (Querier).
func NewDeletedSaleRepository(q Querier) *DeletedSaleRepo {
	return &DeletedSaleRepo{q: q}
}

const deletedSaleColumns = `id, batch_id, user_id, quantity, reason, deleted_by, original_sale_date, store_id, created_at`

// Create archiva la copia de una venta reversada.
func (r *DeletedSaleRepo) Create(d *entity.DeletedSale) error {
	query := `
		INSERT INTO deleted_sales (` + deletedSaleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.BatchID, d.UserID, d.Quantity, d.Reason,
		d.DeletedBy, d.OriginalSaleDate, d.StoreID, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deleted sale: %w", err)
	}
	return nil
}

// List filtra por tienda y por rango de fecha de la venta original.
func (r *DeletedSaleRepo) List(storeID string, from, to *time.Time) ([]*entity.DeletedSale, error) {
	query := `SELECT ` + deletedSaleColumns + ` FROM deleted_sales WHERE 1=1`
	args := []any{}
	pos := 1
	if storeID != "" {
		query += fmt.Sprintf(" AND store_id = $%d", pos)
		args = append(args, storeID)
		pos++
	}
	if from != nil {
		query += fmt.Sprintf(" AND original_sale_date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND original_sale_date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list deleted sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.DeletedSale
	for rows.Next() {
		var d entity.DeletedSale
		if err := rows.Scan(
			&d.ID, &d.BatchID, &d.UserID, &d.Quantity, &d.Reason,
			&d.DeletedBy, &d.OriginalSaleDate, &d.StoreID, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan deleted sale: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// nullable convierte cadena vacía en NULL para columnas con FK opcional.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
