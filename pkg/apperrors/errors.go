package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ValidationError  ErrorType = "VALIDATION_ERROR"
	InvalidIDError   ErrorType = "INVALID_ID"
	NotFoundError    ErrorType = "NOT_FOUND"
	StoreUnavailable ErrorType = "STORE_UNAVAILABLE"
	AuthError        ErrorType = "AUTHENTICATION_ERROR"
	NotConfigured    ErrorType = "NOT_CONFIGURED"
	ServerError      ErrorType = "SERVER_ERROR"
)

// AppError is the structured error handed from services to the HTTP layer.
// Retryable tells the caller to try again later with the same input; every
// other error needs different input.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Retryable  bool      `json:"retryable"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error { return e.Raw }

// New creates an AppError with the status implied by errType.
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: statusFor(errType),
		Retryable:  errType == StoreUnavailable,
	}
}

func ValidationFailed(message string, detail string) *AppError {
	return New(ValidationError, message, detail)
}

func InvalidID(entity string, id string) *AppError {
	return New(InvalidIDError, fmt.Sprintf("invalid %s id", entity), fmt.Sprintf("ID: %q", id))
}

func NotFound(entity string, id string) *AppError {
	return New(NotFoundError, fmt.Sprintf("%s not found", entity), fmt.Sprintf("ID: %s", id))
}

func Unauthorized(message string) *AppError {
	return New(AuthError, message, "")
}

// Disabled reports a feature whose backing service is not configured.
func Disabled(feature string) *AppError {
	return New(NotConfigured, fmt.Sprintf("%s is not configured", feature), "")
}

// StoreFailure wraps a storage error. The raw error is kept for logging only.
func StoreFailure(err error) *AppError {
	return &AppError{
		Type:       StoreUnavailable,
		Message:    "Storage is unavailable",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusServiceUnavailable,
		Retryable:  true,
		Raw:        err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

// Is reports whether err is an AppError of the given type.
func Is(err error, t ErrorType) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Type == t
	}
	return false
}

func statusFor(t ErrorType) int {
	switch t {
	case ValidationError, InvalidIDError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case AuthError:
		return http.StatusUnauthorized
	case StoreUnavailable, NotConfigured:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
