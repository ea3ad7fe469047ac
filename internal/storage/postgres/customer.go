package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/customer"
)

const (
	createCustomerSQL = `INSERT INTO customers (id, name, email, phone, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5)`

	getCustomerByIDSQL = `SELECT id, name, email, COALESCE(phone, ''), created_at
		FROM customers WHERE id = $1`

	listCustomersSQL = `SELECT id, name, email, COALESCE(phone, ''), created_at
		FROM customers ORDER BY created_at, id`

	customerEmailExistsSQL = `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)`
)

// uniqueViolation is the SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

var _ customer.Repository = (*CustomerRepository)(nil)

// CustomerRepository implements customer.Repository backed by PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a CustomerRepository that uses the given pool.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Create persists a new customer. A unique-constraint violation on the email
// column is mapped to customer.DuplicateEmailError, making the database
// constraint the authoritative uniqueness check.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	_, err := r.pool.Exec(ctx, createCustomerSQL,
		c.ID, c.Name, c.Email, c.Phone, c.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return &customer.DuplicateEmailError{Email: c.Email}
		}
		return fmt.Errorf("creating customer %q: %w", c.ID, err)
	}
	return nil
}

// GetByID returns a single customer by its identifier.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	rows, err := r.pool.Query(ctx, getCustomerByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting customer %q: %w", id, err)
	}

	c, err := pgx.CollectExactlyOneRow(rows, scanCustomer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		return nil, fmt.Errorf("getting customer %q: %w", id, err)
	}
	return &c, nil
}

// List returns all customers in creation order.
func (r *CustomerRepository) List(ctx context.Context) ([]customer.Customer, error) {
	rows, err := r.pool.Query(ctx, listCustomersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	return pgx.CollectRows(rows, scanCustomer)
}

// EmailExists reports whether a customer with the given email already exists.
func (r *CustomerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, customerEmailExistsSQL, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking email %q: %w", email, err)
	}
	return exists, nil
}

func scanCustomer(row pgx.CollectableRow) (customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt)
	return c, err
}
