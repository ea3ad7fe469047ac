package memory

import (
	"context"
	"sync"

	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository is an in-memory product.Repository.
type ProductRepository struct {
	mu    sync.RWMutex
	byID  map[string]product.Product
	order []string
}

// NewProductRepository returns an empty in-memory product repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		byID: make(map[string]product.Product),
	}
}

// Create stores a copy of the product.
func (r *ProductRepository) Create(_ context.Context, p *product.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[p.ID] = *p
	r.order = append(r.order, p.ID)
	return nil
}

// GetByIDs returns the products matching any of the given IDs. Missing IDs
// are silently skipped; callers verify completeness.
func (r *ProductRepository) GetByIDs(_ context.Context, ids []string) ([]product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]product.Product, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if p, ok := r.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// List returns all products in insertion order.
func (r *ProductRepository) List(_ context.Context) ([]product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]product.Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}
