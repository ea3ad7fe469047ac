// Command seed-db loads the smoke-test fixtures: three customers, four
// products, and one order linking the first customer to two products.
// Existing rows are cleared first, so repeated runs converge on the same
// state.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/customer"
	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/order"
	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/product"
	"github.com/AmirCrude/alx-backend-graphql-crm/internal/storage/postgres"
)

type customerFixture struct {
	name  string
	email string
	phone string
}

type productFixture struct {
	name  string
	price string
	stock int
}

var customerFixtures = []customerFixture{
	{name: "Alice Johnson", email: "alice@example.com", phone: "+1234567890"},
	{name: "Bob Smith", email: "bob@example.com", phone: "123-456-7890"},
	{name: "Carol Davis", email: "carol@example.com"},
}

var productFixtures = []productFixture{
	{name: "Laptop", price: "999.99", stock: 10},
	{name: "Mouse", price: "29.99", stock: 50},
	{name: "Keyboard", price: "79.99", stock: 30},
	{name: "Monitor", price: "299.99", stock: 15},
}

func main() {
	var databaseURL string
	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL string) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	slog.Info("running migrations")

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	if err := clearData(ctx, pool); err != nil {
		return errors.Wrap(err, "clear existing data")
	}

	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)

	// Customers and products are independent; seed them concurrently and
	// place the order once both are in.
	var (
		customers []customer.Customer
		products  []product.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		customers, err = seedCustomers(gctx, customerRepo)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = seedProducts(gctx, productRepo)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if err := seedOrder(ctx, orderRepo, customers[0], products[:2]); err != nil {
		return errors.Wrap(err, "seed order")
	}

	return nil
}

func clearData(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("clearing existing data")

	for _, table := range []string{"order_products", "orders", "products", "customers"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return errors.Wrapf(err, "clear %s", table)
		}
	}
	return nil
}

func seedCustomers(ctx context.Context, repo *postgres.CustomerRepository) ([]customer.Customer, error) {
	slog.Info("seeding customers", slog.Int("count", len(customerFixtures)))

	out := make([]customer.Customer, 0, len(customerFixtures))
	for _, f := range customerFixtures {
		c := customer.Customer{
			ID:        uuid.New().String(),
			Name:      f.name,
			Email:     f.email,
			Phone:     f.phone,
			CreatedAt: time.Now(),
		}
		if err := repo.Create(ctx, &c); err != nil {
			return nil, errors.Wrapf(err, "create customer %s", f.email)
		}
		out = append(out, c)

		slog.Info("created customer", slog.String("name", c.Name), slog.String("email", c.Email))
	}
	return out, nil
}

func seedProducts(ctx context.Context, repo *postgres.ProductRepository) ([]product.Product, error) {
	slog.Info("seeding products", slog.Int("count", len(productFixtures)))

	out := make([]product.Product, 0, len(productFixtures))
	for _, f := range productFixtures {
		p := product.Product{
			ID:        uuid.New().String(),
			Name:      f.name,
			Price:     decimal.RequireFromString(f.price),
			Stock:     f.stock,
			CreatedAt: time.Now(),
		}
		if err := repo.Create(ctx, &p); err != nil {
			return nil, errors.Wrapf(err, "create product %s", f.name)
		}
		out = append(out, p)

		slog.Info("created product", slog.String("name", p.Name), slog.String("price", p.Price.String()))
	}
	return out, nil
}

func seedOrder(ctx context.Context, repo *postgres.OrderRepository, c customer.Customer, products []product.Product) error {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}

	o := order.Order{
		ID:          uuid.New().String(),
		Customer:    c,
		Products:    products,
		OrderDate:   time.Now(),
		TotalAmount: total,
	}
	if err := repo.Create(ctx, &o); err != nil {
		return err
	}

	slog.Info("created order",
		slog.String("customer", c.Name),
		slog.Int("products", len(products)),
		slog.String("total", total.String()),
	)
	return nil
}
