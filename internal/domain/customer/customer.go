package customer

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/go-faster/errors"
)

// Sentinel errors for customer validation.
var (
	ErrInvalidPhone = errors.New("Phone must be in format: +1234567890 or 123-456-7890")
	ErrNotFound     = errors.New("customer not found")
)

// DuplicateEmailError indicates the email is already taken by an existing
// customer. The storage layer also produces it when the unique constraint on
// customers.email fires, so the constraint stays authoritative even if two
// concurrent creates pass the pre-check.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("Email '%s' already exists", e.Email)
}

// FieldError indicates a field-level constraint violation on the input.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Customer represents a CRM customer record. CreatedAt is set once at
// creation and never updated.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// Repository defines persistence operations for customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context) ([]Customer, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// Accepted phone shapes: international (+ and 10-15 digits) or local
// DDD-DDD-DDDD with literal hyphens.
var phonePattern = regexp.MustCompile(`^(\+\d{10,15}|\d{3}-\d{3}-\d{4})$`)

// emailPattern is a shape check only; deliverability is out of scope.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidatePhone checks the phone string against the accepted shapes.
// An empty phone is valid (the field is optional).
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// validateFields enforces the field-level constraints shared by single and
// bulk creation: non-empty name, well-formed email.
func validateFields(name, email string) error {
	if name == "" {
		return &FieldError{Field: "name", Reason: "must not be empty"}
	}
	if !emailPattern.MatchString(email) {
		return &FieldError{Field: "email", Reason: "must be a valid email address"}
	}
	return nil
}
