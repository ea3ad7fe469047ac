package graph

import (
	"github.com/go-faster/errors"

	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/customer"
	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/order"
	"github.com/AmirCrude/alx-backend-graphql-crm/internal/domain/product"
)

// Stable machine-readable error codes surfaced in GraphQL error extensions.
const (
	codeDuplicateEmail     = "DUPLICATE_EMAIL"
	codeInvalidPhoneFormat = "INVALID_PHONE_FORMAT"
	codeFieldValidation    = "FIELD_VALIDATION"
	codeInvalidPrice       = "INVALID_PRICE"
	codeNegativeStock      = "NEGATIVE_STOCK"
	codeCustomerNotFound   = "CUSTOMER_NOT_FOUND"
	codeProductNotFound    = "PRODUCT_NOT_FOUND"
	codeNoProducts         = "NO_PRODUCTS"
)

// codedError pairs a domain error with its code so graphql-go renders it in
// the response's extensions. Implements gqlerrors.ExtendedError.
type codedError struct {
	err  error
	code string
}

func (e *codedError) Error() string { return e.err.Error() }

func (e *codedError) Unwrap() error { return e.err }

func (e *codedError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

// mapDomainError attaches the matching code to a known domain error. Unknown
// errors pass through untouched and surface as internal errors.
func mapDomainError(err error) error {
	var (
		dupErr *customer.DuplicateEmailError
		cfErr  *customer.FieldError
		pfErr  *product.FieldError
		cnfErr *order.CustomerNotFoundError
		pnfErr *product.NotFoundError
	)

	switch {
	case errors.As(err, &dupErr):
		return &codedError{err: err, code: codeDuplicateEmail}
	case errors.Is(err, customer.ErrInvalidPhone):
		return &codedError{err: err, code: codeInvalidPhoneFormat}
	case errors.As(err, &cfErr), errors.As(err, &pfErr):
		return &codedError{err: err, code: codeFieldValidation}
	case errors.Is(err, product.ErrInvalidPrice):
		return &codedError{err: err, code: codeInvalidPrice}
	case errors.Is(err, product.ErrNegativeStock):
		return &codedError{err: err, code: codeNegativeStock}
	case errors.As(err, &cnfErr):
		return &codedError{err: err, code: codeCustomerNotFound}
	case errors.As(err, &pnfErr):
		return &codedError{err: err, code: codeProductNotFound}
	case errors.Is(err, order.ErrNoProducts):
		return &codedError{err: err, code: codeNoProducts}
	default:
		return err
	}
}
