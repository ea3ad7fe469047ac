package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/customer"
	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/product"
)

// CreateRequest holds the input for placing an order. A nil OrderDate
// defaults to the creation time.
type CreateRequest struct {
	CustomerID string
	ProductIDs []string
	OrderDate  *time.Time
}

// Service encapsulates order placement business logic.
type Service struct {
	customers customer.Repository
	products  product.Repository
	orders    Repository
	now       func() time.Time
}

// NewService creates an order Service with the required domain dependencies.
func NewService(customers customer.Repository, products product.Repository, orders Repository) *Service {
	return &Service{
		customers: customers,
		products:  products,
		orders:    orders,
		now:       time.Now,
	}
}

// Create resolves the customer and every product, computes the total, and
// persists the order together with its product associations. Resolution stops
// at the first missing product; any failure aborts before persistence.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	cust, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			return nil, &CustomerNotFoundError{ID: req.CustomerID}
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	// Batch fetch, then verify each requested ID in input order so the
	// first missing one is the one reported.
	fetched, err := s.products.GetByIDs(ctx, req.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("get products: %w", err)
	}

	byID := make(map[string]product.Product, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}

	products := make([]product.Product, 0, len(req.ProductIDs))
	for _, id := range req.ProductIDs {
		p, ok := byID[id]
		if !ok {
			return nil, &product.NotFoundError{ID: id}
		}
		products = append(products, p)
	}

	// Guarded even though the input list is declared required upstream.
	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}

	orderDate := s.now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	o := &Order{
		ID:          uuid.New().String(),
		Customer:    *cust,
		Products:    products,
		OrderDate:   orderDate,
		TotalAmount: total,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return o, nil
}
