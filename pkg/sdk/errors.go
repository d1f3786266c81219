package sdk

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches any API error with a 404 status.
// Use errors.Is() to check.
var ErrNotFound = errors.New("not found")

// APIError is a structured error response from the service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("alsobought: %s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// Is reports sentinel matches so callers can use errors.Is without
// unwrapping the APIError themselves.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
