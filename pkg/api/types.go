// Package api holds the wire types shared between the HTTP handlers and any
// Go client of the service. Field names follow the JSON contract the web
// frontend consumes.
package api

import "time"

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	// Error is a stable machine-readable code (e.g., "invalid_request")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned when request validation fails.
type ValidationErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`

	// Details contains field-specific validation errors (field name: error message)
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}

// BootstrapStatusResponse reports whether first-run setup has happened.
type BootstrapStatusResponse struct {
	Bootstrapped bool `json:"bootstrapped"`
}

// BootstrapRequest creates the very first account.
type BootstrapRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of an account. The password digest never
// leaves the server.
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	HasOnboarded bool      `json:"hasOnboarded"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PreferencesPayload carries user settings in both directions.
type PreferencesPayload struct {
	Notifications bool   `json:"notifications"`
	DarkMode      bool   `json:"darkMode"`
	Currency      string `json:"currency"`
}

// PreferencesResponse is the stored settings row.
type PreferencesResponse struct {
	Notifications bool      `json:"notifications"`
	DarkMode      bool      `json:"darkMode"`
	Currency      string    `json:"currency"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CardRequest creates or replaces a card.
type CardRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Last4 string `json:"last4"`
}

// CardResponse is the public view of a saved card.
type CardResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Last4     string    `json:"last4"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CardListResponse wraps the card collection.
type CardListResponse struct {
	Cards []CardResponse `json:"cards"`
}

// OnboardingRequest is the single submit of the onboarding wizard.
type OnboardingRequest struct {
	FirstName   string             `json:"firstName"`
	LastName    string             `json:"lastName"`
	Preferences PreferencesPayload `json:"preferences"`
	Card        *CardRequest       `json:"card,omitempty"`
}

// OnboardingResponse returns everything the wizard created.
type OnboardingResponse struct {
	User        UserResponse        `json:"user"`
	Preferences PreferencesResponse `json:"preferences"`
	Card        *CardResponse       `json:"card,omitempty"`
}
