package product

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRequest holds the input for creating a product. A nil Stock
// defaults to zero.
type CreateRequest struct {
	Name  string
	Price decimal.Decimal
	Stock *int
}

// Service encapsulates product creation business logic.
type Service struct {
	products Repository
	now      func() time.Time
}

// NewService creates a product Service backed by the given repository.
func NewService(products Repository) *Service {
	return &Service{
		products: products,
		now:      time.Now,
	}
}

// Create validates the request and persists a new product. Price must be
// strictly positive and stock non-negative; any failure aborts before
// persistence.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Product, error) {
	if !req.Price.IsPositive() {
		return nil, ErrInvalidPrice
	}

	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}

	if req.Name == "" {
		return nil, &FieldError{Field: "name", Reason: "must not be empty"}
	}

	p := &Product{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Price:     req.Price,
		Stock:     stock,
		CreatedAt: s.now(),
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}
