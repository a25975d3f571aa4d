package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. Every AppError carries exactly one of these.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("upstream failure")
	ErrTimeout      = errors.New("timeout")
	ErrUnavailable  = errors.New("service unavailable")
	ErrStorage      = errors.New("storage failure")
	ErrInternal     = errors.New("internal error")
)

// AppError represents an application error with HTTP status and error code.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
	StatusCode int    `json:"-"`
	Kind       error  `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// Is reports whether target is an AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap returns a copy of e with cause attached. Sentinels stay untouched.
func (e *AppError) Wrap(cause error) *AppError {
	cp := *e
	cp.Err = cause
	return &cp
}

// WithDetails returns a copy of e carrying details for the response body.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// New creates a new application error.
func New(code, message string, statusCode int, kind error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Kind:       kind,
	}
}

// Validation creates a 400 error.
func Validation(code, message string) *AppError {
	return New(code, message, http.StatusBadRequest, ErrValidation)
}

// NotFound creates a 404 error.
func NotFound(code, message string) *AppError {
	return New(code, message, http.StatusNotFound, ErrNotFound)
}

// Conflict creates a 409 error.
func Conflict(code, message string) *AppError {
	return New(code, message, http.StatusConflict, ErrConflict)
}

// Unauthorized creates a 401 error.
func Unauthorized(code, message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return New(code, message, http.StatusUnauthorized, ErrUnauthorized)
}

// Upstream creates a 502 error for a failed gateway call.
func Upstream(code, message string) *AppError {
	return New(code, message, http.StatusBadGateway, ErrUpstream)
}

// Timeout creates a 504 error.
func Timeout(code, message string) *AppError {
	return New(code, message, http.StatusGatewayTimeout, ErrTimeout)
}

// Unavailable creates a 503 error.
func Unavailable(code, message string) *AppError {
	return New(code, message, http.StatusServiceUnavailable, ErrUnavailable)
}

// Storage creates a 500 error for a failed store operation.
func Storage(message string, err error) *AppError {
	e := New("STORAGE_ERROR", message, http.StatusInternalServerError, ErrStorage)
	e.Err = err
	return e
}

// Internal creates a 500 error.
func Internal(message string, err error) *AppError {
	e := New("INTERNAL_ERROR", message, http.StatusInternalServerError, ErrInternal)
	e.Err = err
	return e
}

// As extracts the outermost AppError from err.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetStatusCode returns the appropriate HTTP status code for an error.
func GetStatusCode(err error) int {
	if appErr, ok := As(err); ok && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
