package memory

import (
	"context"
	"sync"

	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository is an in-memory order.Repository.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []order.Order
}

// NewOrderRepository returns an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create stores a copy of the order. The products slice is copied so later
// mutations by the caller cannot leak into the stored record.
func (r *OrderRepository) Create(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *o
	stored.Products = append(stored.Products[:0:0], o.Products...)
	r.orders = append(r.orders, stored)
	return nil
}

// List returns all orders in insertion order.
func (r *OrderRepository) List(_ context.Context) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]order.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}
