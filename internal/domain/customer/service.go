package customer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// CreateRequest holds the input for creating a single customer.
type CreateRequest struct {
	Name  string
	Email string
	Phone string
}

// Service encapsulates customer creation business logic.
type Service struct {
	customers Repository
	now       func() time.Time
}

// NewService creates a customer Service backed by the given repository.
func NewService(customers Repository) *Service {
	return &Service{
		customers: customers,
		now:       time.Now,
	}
}

// Create validates the request and persists a new customer. Validation order:
// email uniqueness, phone shape, field constraints. Any failure aborts before
// persistence; no partial customer is written.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Customer, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	c := &Customer{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		CreatedAt: s.now(),
	}
	if err := s.customers.Create(ctx, c); err != nil {
		// The unique constraint may fire between check and insert; surface
		// the duplicate as-is rather than wrapping it.
		var dup *DuplicateEmailError
		if errors.As(err, &dup) {
			return nil, dup
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return c, nil
}

// BulkCreate processes each input independently in sequence order. Successes
// accumulate in the returned slice; failures become "Row N: ..." messages
// (1-based) and never abort the batch. Earlier successes are not rolled back
// when later items fail.
func (s *Service) BulkCreate(ctx context.Context, reqs []CreateRequest) ([]Customer, []string) {
	created := make([]Customer, 0, len(reqs))
	var errs []string

	for i, req := range reqs {
		c, err := s.Create(ctx, req)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: %s", i+1, rowMessage(err)))
			continue
		}
		created = append(created, *c)
	}
	return created, errs
}

// rowMessage renders a bulk-row failure. Phone failures use the short form;
// every other error keeps its own message.
func rowMessage(err error) string {
	if errors.Is(err, ErrInvalidPhone) {
		return "Invalid phone format"
	}
	return err.Error()
}

func (s *Service) validate(ctx context.Context, req CreateRequest) error {
	exists, err := s.customers.EmailExists(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if exists {
		return &DuplicateEmailError{Email: req.Email}
	}

	if err := ValidatePhone(req.Phone); err != nil {
		return err
	}

	return validateFields(req.Name, req.Email)
}
