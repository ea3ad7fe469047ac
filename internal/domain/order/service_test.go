package order

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/customer"
	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/product"
)

// --- Mock implementations ---

type mockCustomerRepo struct {
	byID map[string]*customer.Customer
}

func (m *mockCustomerRepo) Create(_ context.Context, _ *customer.Customer) error { return nil }

func (m *mockCustomerRepo) GetByID(_ context.Context, id string) (*customer.Customer, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return c, nil
}

func (m *mockCustomerRepo) List(_ context.Context) ([]customer.Customer, error) { return nil, nil }

func (m *mockCustomerRepo) EmailExists(_ context.Context, _ string) (bool, error) {
	return false, nil
}

type mockProductRepo struct {
	byID map[string]product.Product
}

func (m *mockProductRepo) Create(_ context.Context, _ *product.Product) error { return nil }

func (m *mockProductRepo) GetByIDs(_ context.Context, ids []string) ([]product.Product, error) {
	out := make([]product.Product, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := m.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) List(_ context.Context) ([]product.Product, error) { return nil, nil }

type mockOrderRepo struct {
	lastOrder *Order
	err       error
}

func (m *mockOrderRepo) Create(_ context.Context, o *Order) error {
	if m.err != nil {
		return m.err
	}
	m.lastOrder = o
	return nil
}

func (m *mockOrderRepo) List(_ context.Context) ([]Order, error) { return nil, nil }

// --- Helpers ---

func newCustomerRepo(ids ...string) *mockCustomerRepo {
	byID := make(map[string]*customer.Customer, len(ids))
	for _, id := range ids {
		byID[id] = &customer.Customer{ID: id, Name: "Test Customer", Email: id + "@example.com"}
	}
	return &mockCustomerRepo{byID: byID}
}

func newProductRepo(products ...product.Product) *mockProductRepo {
	byID := make(map[string]product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &mockProductRepo{byID: byID}
}

func newTestProduct(id, name, price string) product.Product {
	return product.Product{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: 5,
	}
}

// --- Tests ---

func TestCreate_CustomerNotFound(t *testing.T) {
	svc := NewService(newCustomerRepo(), newProductRepo(), &mockOrderRepo{})

	_, err := svc.Create(context.Background(), CreateRequest{
		CustomerID: "missing",
		ProductIDs: []string{"p1"},
	})

	var cnf *CustomerNotFoundError
	require.ErrorAs(t, err, &cnf)
	assert.Equal(t, "missing", cnf.ID)
	assert.Equal(t, "Customer with ID missing does not exist", err.Error())
}

func TestCreate_ProductNotFound(t *testing.T) {
	p1 := newTestProduct("p1", "Laptop", "999.99")
	orders := &mockOrderRepo{}
	svc := NewService(newCustomerRepo("c1"), newProductRepo(p1), orders)

	_, err := svc.Create(context.Background(), CreateRequest{
		CustomerID: "c1",
		ProductIDs: []string{"p1", "ghost", "ghost2"},
	})

	// The first missing ID in input order is the one reported.
	var pnf *product.NotFoundError
	require.ErrorAs(t, err, &pnf)
	assert.Equal(t, "ghost", pnf.ID)
	assert.Nil(t, orders.lastOrder, "no order may be persisted")
}

func TestCreate_NoProducts(t *testing.T) {
	svc := NewService(newCustomerRepo("c1"), newProductRepo(), &mockOrderRepo{})

	_, err := svc.Create(context.Background(), CreateRequest{
		CustomerID: "c1",
		ProductIDs: nil,
	})

	require.ErrorIs(t, err, ErrNoProducts)
}

func TestCreate_TotalAmount(t *testing.T) {
	p1 := newTestProduct("p1", "Laptop", "10.00")
	p2 := newTestProduct("p2", "Mouse", "5.50")
	orders := &mockOrderRepo{}
	svc := NewService(newCustomerRepo("c1"), newProductRepo(p1, p2), orders)

	o, err := svc.Create(context.Background(), CreateRequest{
		CustomerID: "c1",
		ProductIDs: []string{"p1", "p2"},
	})

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("15.50").Equal(o.TotalAmount))
	assert.Equal(t, "c1", o.Customer.ID)
	assert.Len(t, o.Products, 2)
	require.NotNil(t, orders.lastOrder)
	assert.False(t, o.OrderDate.IsZero())
}

func TestCreate_DuplicateProductCountedTwice(t *testing.T) {
	p1 := newTestProduct("p1", "Mouse", "29.99")
	svc := NewService(newCustomerRepo("c1"), newProductRepo(p1), &mockOrderRepo{})

	o, err := svc.Create(context.Background(), CreateRequest{
		CustomerID: "c1",
		ProductIDs: []string{"p1", "p1"},
	})

	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("59.98").Equal(o.TotalAmount))
}

func TestCreate_OrderDateOverride(t *testing.T) {
	p1 := newTestProduct("p1", "Laptop", "999.99")
	svc := NewService(newCustomerRepo("c1"), newProductRepo(p1), &mockOrderRepo{})

	want := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	o, err := svc.Create(context.Background(), CreateRequest{
		CustomerID: "c1",
		ProductIDs: []string{"p1"},
		OrderDate:  &want,
	})

	require.NoError(t, err)
	assert.True(t, want.Equal(o.OrderDate))
}

func TestCreate_TotalFrozenAfterPriceChange(t *testing.T) {
	p1 := newTestProduct("p1", "Laptop", "100.00")
	products := newProductRepo(p1)
	orders := &mockOrderRepo{}
	svc := NewService(newCustomerRepo("c1"), products, orders)

	_, err := svc.Create(context.Background(), CreateRequest{
		CustomerID: "c1",
		ProductIDs: []string{"p1"},
	})
	require.NoError(t, err)

	// Price change after the order is placed must not affect the stored total.
	p1.Price = decimal.RequireFromString("200.00")
	products.byID["p1"] = p1

	assert.True(t, decimal.RequireFromString("100.00").Equal(orders.lastOrder.TotalAmount))
}

func TestCreate_RepoError(t *testing.T) {
	p1 := newTestProduct("p1", "Laptop", "999.99")
	svc := NewService(
		newCustomerRepo("c1"),
		newProductRepo(p1),
		&mockOrderRepo{err: errors.New("db write failed")},
	)

	_, err := svc.Create(context.Background(), CreateRequest{
		CustomerID: "c1",
		ProductIDs: []string{"p1"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create order")
}
