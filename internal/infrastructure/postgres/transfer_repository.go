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

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de traspasos. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, batch_id, sender_store_id, receiver_store_id, quantity, price, batch, status, created_at, updated_at`

// Create persiste la solicitud de traspaso.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.BatchID, t.SenderStoreID, t.ReceiverStoreID, t.Quantity,
		t.Price, t.Batch, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traspaso por ID.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE id = $1`
	var t entity.Transfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.BatchID, &t.SenderStoreID, &t.ReceiverStoreID, &t.Quantity,
		&t.Price, &t.Batch, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &t, nil
}

// CloseIfPending fija el estado terminal como una sola operación condicional:
// el WHERE sobre status garantiza que dos aprobaciones concurrentes no
// procesen el mismo traspaso dos veces.
func (r *TransferRepo) CloseIfPending(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE transfers SET status = $2, updated_at = now()
		 WHERE id = $1 AND status = $3`,
		id, status, entity.TransferPending,
	)
	if err != nil {
		return fmt.Errorf("close transfer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		got, err := r.GetByID(id)
		if err != nil {
			return err
		}
		if got == nil {
			return domain.ErrNotFound
		}
		return domain.ErrAlreadyProcessed
	}
	return nil
}

// List lista traspasos con rango de fechas y estado opcionales.
func (r *TransferRepo) List(from, to *time.Time, status string) ([]*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE 1=1`
	args := []any{}
	pos := 1
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
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	return r.scanList(rows)
}

// ListApprovedBetween lista traspasos aprobados de sender a receiver en la ventana.
func (r *TransferRepo) ListApprovedBetween(senderStoreID, receiverStoreID string, from, to time.Time) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE sender_store_id = $1 AND receiver_store_id = $2 AND status = $3
		  AND created_at >= $4 AND created_at <= $5
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query,
		senderStoreID, receiverStoreID, entity.TransferApproved, from, to)
	if err != nil {
		return nil, fmt.Errorf("list approved transfers: %w", err)
	}
	return r.scanList(rows)
}

func (r *TransferRepo) scanList(rows pgx.Rows) ([]*entity.Transfer, error) {
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(
			&t.ID, &t.BatchID, &t.SenderStoreID, &t.ReceiverStoreID, &t.Quantity,
			&t.Price, &t.Batch, &t.Status, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
