package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/customer"
	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/product"
)

// ErrNoProducts is returned when an order references no products.
var ErrNoProducts = errors.New("At least one product is required")

// CustomerNotFoundError indicates the referenced customer does not exist.
type CustomerNotFoundError struct {
	ID string
}

func (e *CustomerNotFoundError) Error() string {
	return fmt.Sprintf("Customer with ID %s does not exist", e.ID)
}

// Order represents a placed order. TotalAmount is the sum of the referenced
// products' prices at creation time and is never recomputed, even if product
// prices change later.
type Order struct {
	ID          string
	Customer    customer.Customer
	Products    []product.Product
	OrderDate   time.Time
	TotalAmount decimal.Decimal
}

// Repository defines persistence operations for orders. Create must persist
// the order row and its product associations as a single atomic unit.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]Order, error)
}
