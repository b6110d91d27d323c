// Package errors defines the error vocabulary shared by all layers of the
// catalog service and its mapping onto HTTP status codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the common failure classes.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrValidation     = errors.New("validation failed")
	ErrUnavailable    = errors.New("service unavailable")
	ErrCheckoutFailed = errors.New("checkout failed")
	ErrInternal       = errors.New("internal error")
)

// AppError is a structured application error carrying a machine-readable
// code and an HTTP status.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// NotFound builds a 404 error for a missing resource.
func NotFound(resource, key string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s %q not found", resource, key),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput builds a 400 error for a malformed request.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Validation builds a 422 error for data that fails catalog invariants,
// such as a duplicate or missing machine name in the source payload.
func Validation(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrValidation,
	}
}

// DuplicateSlug builds the validation error for two titles sharing a
// machine name. Last-write-wins is not acceptable: slugs are used as
// navigation targets and must be unambiguous.
func DuplicateSlug(machineName string) *AppError {
	return Validation(fmt.Sprintf("duplicate machine_name %q in catalog payload", machineName))
}

// Unavailable builds a 503 error for an unreachable collaborator.
func Unavailable(what string, err error) *AppError {
	return &AppError{
		Code:    "UNAVAILABLE",
		Message: what + " is unavailable",
		Status:  http.StatusServiceUnavailable,
		Err:     errors.Join(ErrUnavailable, err),
	}
}

// CheckoutFailed builds a 422 error for a payment-link failure.
func CheckoutFailed(message string) *AppError {
	return &AppError{
		Code:    "CHECKOUT_FAILED",
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrCheckoutFailed,
	}
}

// Internal builds a 500 error wrapping err.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Wrap adds context to err, preserving its identity for errors.Is.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus maps err to an HTTP status code.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrValidation), errors.Is(err, ErrCheckoutFailed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
