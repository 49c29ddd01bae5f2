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

var _ repository.CreditCustomerRepository = (*CreditCustomerRepo)(nil)

// CreditCustomerRepo implementación de CreditCustomerRepository sobre PostgreSQL (usable con pool o tx).
type CreditCustomerRepo struct {
	q Querier
}

// NewCreditCustomerRepository construye el adaptador de clientes de crédito. Pasar pool o tx (Querier).
func NewCreditCustomerRepository(q Querier) *CreditCustomerRepo {
	return &CreditCustomerRepo{q: q}
}

const creditCustomerColumns = `id, name, email, phone_number, balance, is_valid, created_at, updated_at`

// Create persiste un cliente nuevo.
func (r *CreditCustomerRepo) Create(c *entity.CreditCustomer) error {
	query := `
		INSERT INTO credit_customers (` + creditCustomerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Email, c.PhoneNumber, c.Balance, c.IsValid,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert credit customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CreditCustomerRepo) GetByID(id string) (*entity.CreditCustomer, error) {
	query := `SELECT ` + creditCustomerColumns + ` FROM credit_customers WHERE id = $1`
	var c entity.CreditCustomer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.PhoneNumber, &c.Balance, &c.IsValid,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credit customer: %w", err)
	}
	return &c, nil
}

// List lista todos los clientes de crédito.
func (r *CreditCustomerRepo) List() ([]*entity.CreditCustomer, error) {
	query := `SELECT ` + creditCustomerColumns + ` FROM credit_customers ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list credit customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.CreditCustomer
	for rows.Next() {
		var c entity.CreditCustomer
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Email, &c.PhoneNumber, &c.Balance, &c.IsValid,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan credit customer: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// AdjustBalance aplica el delta sobre el saldo como una sola operación: las
// ventas y reversas concurrentes se serializan en la fila.
func (r *CreditCustomerRepo) AdjustBalance(id string, delta decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE credit_customers SET balance = balance + $2, updated_at = now() WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust balance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetValidity bloquea o habilita al cliente.
func (r *CreditCustomerRepo) SetValidity(id string, isValid bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE credit_customers SET is_valid = $2, updated_at = now() WHERE id = $1`,
		id, isValid,
	)
	if err != nil {
		return fmt.Errorf("set validity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update actualiza los datos de contacto. El saldo solo cambia por AdjustBalance.
func (r *CreditCustomerRepo) Update(c *entity.CreditCustomer) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE credit_customers SET name = $2, email = $3, phone_number = $4, updated_at = $5
		 WHERE id = $1`,
		c.ID, c.Name, c.Email, c.PhoneNumber, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update credit customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
