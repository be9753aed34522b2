package views

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrEmptyName      = errors.New("view name must not be empty")
	ErrInvalidPattern = errors.New("route pattern must start with '/'")
	ErrNilHandler     = errors.New("view handler must not be nil")
	ErrUnknownFormat  = errors.New("unknown dump format")
	ErrNilRouter      = errors.New("router must not be nil")
)

// HTTPError represents an HTTP error with a specific status code and message
type HTTPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Message)
}

// NewHTTPError creates a new HTTPError with the given status code and message
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

// NewHTTPErrorWithDetails creates a new HTTPError with additional details
func NewHTTPErrorWithDetails(code int, message string, details any) *HTTPError {
	return &HTTPError{Code: code, Message: message, Details: details}
}

// ErrBadRequest creates a 400 Bad Request error
func ErrBadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

// ErrNotFound creates a 404 Not Found error
func ErrNotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

// ErrInternalServerError creates a 500 Internal Server Error
func ErrInternalServerError(message string) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message)
}

// ErrorResponse turns any handler error into a status code and JSON body.
// Adapters use it so every framework renders errors the same way.
func ErrorResponse(err error) (int, map[string]any) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		body := map[string]any{"error": httpErr.Message}
		if httpErr.Details != nil {
			body["details"] = httpErr.Details
		}
		return httpErr.Code, body
	}
	return http.StatusInternalServerError, map[string]any{"error": err.Error()}
}
