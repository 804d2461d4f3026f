package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// Client talks to the HTTP API. Authentication rides in the session cookie,
// which the client's cookie jar carries automatically after Login or
// Bootstrap; there is no token to manage by hand.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with its own cookie jar.
func NewClient(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}, nil
}

func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// do performs a request and decodes the response into out (which may be nil
// for endpoints that answer 204). Non-2xx responses become an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Errors arrive in one of two envelopes: the plain error one or
		// the validation one. Decode both shapes at once.
		var raw struct {
			Error            string            `json:"error"`
			ErrorDescription string            `json:"error_description"`
			Code             string            `json:"code"`
			Message          string            `json:"message"`
			Details          map[string]string `json:"details"`
		}
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
			apiErr.Code = "unexpected_response"
			apiErr.Description = resp.Status
			return apiErr
		}
		if raw.Error != "" {
			apiErr.Code = raw.Error
			apiErr.Description = raw.ErrorDescription
		} else {
			apiErr.Code = raw.Code
			apiErr.Description = raw.Message
			apiErr.Details = raw.Details
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// BootstrapStatus reports whether first-run setup has already happened.
func (c *Client) BootstrapStatus(ctx context.Context) (BootstrapStatusResponse, error) {
	var out BootstrapStatusResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/bootstrap/status", nil, &out)
	return out, err
}

// Bootstrap creates the first account and stores its session cookie.
func (c *Client) Bootstrap(ctx context.Context, req BootstrapRequest) (UserResponse, error) {
	var out UserResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/bootstrap", req, &out)
	return out, err
}

// Login authenticates and stores the session cookie.
func (c *Client) Login(ctx context.Context, req LoginRequest) (UserResponse, error) {
	var out UserResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", req, &out)
	return out, err
}

// Logout clears the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/v1/auth/logout", nil, nil)
}

// Me returns the authenticated account.
func (c *Client) Me(ctx context.Context) (UserResponse, error) {
	var out UserResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &out)
	return out, err
}

// Onboard completes the onboarding wizard.
func (c *Client) Onboard(ctx context.Context, req OnboardingRequest) (OnboardingResponse, error) {
	var out OnboardingResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/onboarding", req, &out)
	return out, err
}

// ListCards returns the account's cards, newest first.
func (c *Client) ListCards(ctx context.Context) (CardListResponse, error) {
	var out CardListResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/cards", nil, &out)
	return out, err
}

// CreateCard saves a new card.
func (c *Client) CreateCard(ctx context.Context, req CardRequest) (CardResponse, error) {
	var out CardResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/cards", req, &out)
	return out, err
}

// GetCard fetches a single card.
func (c *Client) GetCard(ctx context.Context, id string) (CardResponse, error) {
	var out CardResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/cards/"+id, nil, &out)
	return out, err
}

// UpdateCard replaces a card's mutable fields.
func (c *Client) UpdateCard(ctx context.Context, id string, req CardRequest) (CardResponse, error) {
	var out CardResponse
	err := c.do(ctx, http.MethodPut, "/api/v1/cards/"+id, req, &out)
	return out, err
}

// DeleteCard removes a card.
func (c *Client) DeleteCard(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/cards/"+id, nil, nil)
}

// GetPreferences returns the account's settings.
func (c *Client) GetPreferences(ctx context.Context) (PreferencesResponse, error) {
	var out PreferencesResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/preferences", nil, &out)
	return out, err
}

// UpdatePreferences overwrites the account's settings.
func (c *Client) UpdatePreferences(ctx context.Context, req PreferencesPayload) (PreferencesResponse, error) {
	var out PreferencesResponse
	err := c.do(ctx, http.MethodPut, "/api/v1/preferences", req, &out)
	return out, err
}
