package api

import "fmt"

// APIError is the error a Client returns when the service answers with a
// non-2xx status. It implements the error interface.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g., "invalid_credentials")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`

	// Details carries field-specific validation errors when Code is
	// "validation_error"
	Details map[string]string `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}
