package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError carries the status and client-facing message of a failed operation.
// Err, when set, is the underlying cause and is never shown to clients.
type HTTPError struct {
	Status  int
	Message string
	Fields  map[string]string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

// NewValidationError reports per-field problems with a 400.
func NewValidationError(message string, fields map[string]string) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: message,
		Fields:  fields,
	}
}

// NewInternalError hides cause behind a generic 500 message.
func NewInternalError(message string, cause error) error {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: message,
		Err:     cause,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}
