package usecase

import (
	"errors"
	"fmt"

	domain "github.com/aq2208/gorder-workflow/internal/entity"
)

var ErrDuplicate = errors.New("duplicate idempotency key")

// PlaceOrderError is one of ValidationError, PricingError or RemoteServiceError.
// A failed workflow run returns exactly one of them.
type PlaceOrderError interface {
	error
	placeOrderError()
}

type ValidationError struct {
	Field   string
	Message string
}

type PricingError struct {
	Field   string
	Message string
}

type ServiceInfo struct {
	Name     string
	Endpoint string
}

type RemoteServiceError struct {
	Service ServiceInfo
	Err     error
}

func (ValidationError) placeOrderError()    {}
func (PricingError) placeOrderError()       {}
func (RemoteServiceError) placeOrderError() {}

func (e ValidationError) Error() string { return fieldMessage(e.Field, e.Message) }
func (e PricingError) Error() string    { return fieldMessage(e.Field, e.Message) }

func (e RemoteServiceError) Error() string {
	return fmt.Sprintf("remote service %s: %v", e.Service.Name, e.Err)
}

func (e RemoteServiceError) Unwrap() error { return e.Err }

func fieldMessage(field, msg string) string {
	if field == "" {
		return msg
	}
	return field + ": " + msg
}

// ErrorCode is the wire code of a PlaceOrderError.
func ErrorCode(err PlaceOrderError) string {
	switch err.(type) {
	case ValidationError:
		return "ValidationError"
	case PricingError:
		return "PricingError"
	case RemoteServiceError:
		return "RemoteServiceError"
	}
	panic("usecase: unknown place order error")
}

// AddressValidationError is the rejection an AddressChecker reports for an
// address it was able to inspect.
type AddressValidationError int

const (
	AddressNotFound AddressValidationError = iota + 1
	InvalidFormat
)

func (e AddressValidationError) Error() string {
	switch e {
	case AddressNotFound:
		return "address not found"
	case InvalidFormat:
		return "address has invalid format"
	}
	return "address validation failed"
}

// asFieldFailure converts a constructor failure into a workflow error,
// prefixing the constrained field name with path.
func asFieldFailure(path string, err error, build func(field, msg string) PlaceOrderError) PlaceOrderError {
	var ce *domain.ConstraintError
	if errors.As(err, &ce) {
		return build(joinField(path, ce.Field), ce.Msg)
	}
	return build(path, err.Error())
}

func joinField(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}

func validationFailure(path string, err error) PlaceOrderError {
	return asFieldFailure(path, err, func(field, msg string) PlaceOrderError {
		return ValidationError{Field: field, Message: msg}
	})
}

func pricingFailure(path string, err error) PlaceOrderError {
	return asFieldFailure(path, err, func(field, msg string) PlaceOrderError {
		return PricingError{Field: field, Message: msg}
	})
}
