package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dcastano/farmacia-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, arma los repos atados a la tx y hace Commit si
// fn retorna nil o Rollback si retorna error.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ports.Repos{
		Brands:          NewBrandRepository(tx),
		Batches:         NewBatchRepository(tx),
		Movements:       NewMovementRepository(tx),
		Transfers:       NewTransferRepository(tx),
		Sales:           NewSaleRepository(tx),
		CreditSales:     NewCreditSaleRepository(tx),
		DeletedSales:    NewDeletedSaleRepository(tx),
		CreditCustomers: NewCreditCustomerRepository(tx),
		Damaged:         NewDamagedRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
