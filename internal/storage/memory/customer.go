// Package memory provides mutex-guarded in-memory implementations of the
// domain repositories, used by unit tests and dependency-free local runs.
// Listings preserve insertion order, mirroring the storage-defined order of
// the Postgres implementations.
package memory

import (
	"context"
	"sync"

	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/customer"
)

var _ customer.Repository = (*CustomerRepository)(nil)

// CustomerRepository is an in-memory customer.Repository.
type CustomerRepository struct {
	mu      sync.RWMutex
	byID    map[string]customer.Customer
	byEmail map[string]string
	order   []string
}

// NewCustomerRepository returns an empty in-memory customer repository.
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		byID:    make(map[string]customer.Customer),
		byEmail: make(map[string]string),
	}
}

// Create stores a copy of the customer. It enforces email uniqueness the same
// way the database unique constraint does.
func (r *CustomerRepository) Create(_ context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[c.Email]; taken {
		return &customer.DuplicateEmailError{Email: c.Email}
	}
	r.byID[c.ID] = *c
	r.byEmail[c.Email] = c.ID
	r.order = append(r.order, c.ID)
	return nil
}

// GetByID returns the customer or customer.ErrNotFound.
func (r *CustomerRepository) GetByID(_ context.Context, id string) (*customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return &c, nil
}

// List returns all customers in insertion order.
func (r *CustomerRepository) List(_ context.Context) ([]customer.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]customer.Customer, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

// EmailExists reports whether any stored customer has the given email.
func (r *CustomerRepository) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[email]
	return ok, nil
}
