package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/customer"
	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/order"
	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/product"
)

const (
	createOrderSQL = `INSERT INTO orders (id, customer_id, order_date, total_amount)
		VALUES ($1, $2, $3, $4)`

	createOrderProductSQL = `INSERT INTO order_products (order_id, product_id, position)
		VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`

	listOrdersSQL = `SELECT o.id, o.order_date, o.total_amount,
			c.id, c.name, c.email, COALESCE(c.phone, ''), c.created_at
		FROM orders o
		JOIN customers c ON c.id = o.customer_id
		ORDER BY o.order_date, o.id`

	listOrderProductsSQL = `SELECT op.order_id, p.id, p.name, p.price, p.stock, p.created_at
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		ORDER BY op.order_id, op.position`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists the order row and its product associations in a single
// transaction, so a failed association insert leaves no partial order behind.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.Exec(ctx, createOrderSQL,
		o.ID, o.Customer.ID, o.OrderDate, o.TotalAmount,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}

	// Duplicate product references collapse into one association row, the
	// same way a relational many-to-many set does.
	for i, p := range o.Products {
		_, err = tx.Exec(ctx, createOrderProductSQL, o.ID, p.ID, i)
		if err != nil {
			return fmt.Errorf("associating product %q with order %q: %w", p.ID, o.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing order %q: %w", o.ID, err)
	}
	return nil
}

// List returns all orders with their customer and associated products. The
// associations are fetched in one extra query and stitched in memory.
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	productsByOrder, err := r.listOrderProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Products = productsByOrder[orders[i].ID]
	}
	return orders, nil
}

func (r *OrderRepository) listOrderProducts(ctx context.Context) (map[string][]product.Product, error) {
	rows, err := r.pool.Query(ctx, listOrderProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing order products: %w", err)
	}
	defer rows.Close()

	byOrder := make(map[string][]product.Product)
	for rows.Next() {
		var (
			orderID string
			p       product.Product
		)
		if err := rows.Scan(&orderID, &p.ID, &p.Name, &p.Price, &p.Stock, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning order product: %w", err)
		}
		byOrder[orderID] = append(byOrder[orderID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing order products: %w", err)
	}
	return byOrder, nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o order.Order
		c customer.Customer
	)
	err := row.Scan(
		&o.ID, &o.OrderDate, &o.TotalAmount,
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.CreatedAt,
	)
	o.Customer = c
	return o, err
}
