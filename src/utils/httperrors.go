package utils

import (
	"fmt"
	"net/http"
)

// HTTPError defines a custom error structure that includes an HTTP status code and message
type HTTPError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
}

// Implement the Error() method to satisfy the error interface
func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError instance with a custom status code and message
func NewHTTPError(code int, message string) error {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// ValidationError creates a 400 Bad Request error for a malformed or incomplete payload
func ValidationError(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

// NotAuthenticated creates a 401 error for operations with no identity bound
func NotAuthenticated() error {
	return NewHTTPError(http.StatusUnauthorized, "user not authenticated")
}

// NotFound creates a 404 Not Found error
func NotFound(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

// UpstreamError creates a 502 error wrapping a failed external provider call.
// The provider detail is for logs; callers only see a generic message.
func UpstreamError(provider string) error {
	return NewHTTPError(http.StatusBadGateway, fmt.Sprintf("%s request failed", provider))
}
