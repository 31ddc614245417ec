package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of its HTTP status code
type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindInvalidTransition Kind = "invalid_transition"
	KindStoreUnavailable  Kind = "store_unavailable"
	KindValidation        Kind = "validation"
	KindBadRequest        Kind = "bad_request"
	KindUnauthorized      Kind = "unauthorized"
	KindInternal          Kind = "internal"
	KindDeliveryFailed    Kind = "delivery_failed"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`

	cause error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying driver or transport error, if any
func (e *AppError) Unwrap() error {
	return e.cause
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Kind:    KindValidation,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: resource + " not found",
	}
}

// NewInvalidTransitionError reports a lifecycle transition refused in the current state
func NewInvalidTransitionError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Kind:    KindInvalidTransition,
		Message: message,
	}
}

// NewStoreUnavailableError wraps a failing call to the quote store
func NewStoreUnavailableError(cause error) *AppError {
	return &AppError{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindStoreUnavailable,
		Message: "Quote store unavailable",
		cause:   cause,
	}
}

// NewDeliveryError reports an email the relay refused or could not take
func NewDeliveryError(cause error) *AppError {
	return &AppError{
		Code:    http.StatusBadGateway,
		Kind:    KindDeliveryFailed,
		Message: "Email delivery failed",
		cause:   cause,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindBadRequest,
		Message: message,
	}
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: err.Error(),
	}
}
