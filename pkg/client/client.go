// Package client is a typed Go client for the identity service RPC surface.
// The gateway and the resource services use it to authenticate end users and
// to validate bearer tokens before honoring requests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultTimeout = 5 * time.Second

// Client talks to one identity service instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the identity service at baseURL
// (e.g. "http://idm:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// AuthResult is the response of the Authenticate operation.
type AuthResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

// ValidationResult is the response of the ValidateToken operation.
type ValidationResult struct {
	Valid   bool   `json:"valid"`
	UserID  int64  `json:"user_id"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

// InvalidationResult is the response of the InvalidateToken operation.
type InvalidationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateUserResult is the response of the CreateUser operation.
type CreateUserResult struct {
	Success bool   `json:"success"`
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

// Authenticate exchanges credentials for a token. A denied login is not an
// error: it comes back as Success=false with the service's message.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*AuthResult, error) {
	var out AuthResult
	err := c.post(ctx, "/v1/auth/authenticate",
		map[string]string{"username": username, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidateToken asks the identity service whether a bearer token is valid.
func (c *Client) ValidateToken(ctx context.Context, token string) (*ValidationResult, error) {
	var out ValidationResult
	if err := c.post(ctx, "/v1/auth/validate", map[string]string{"token": token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InvalidateToken revokes a token (logout).
func (c *Client) InvalidateToken(ctx context.Context, token string) (*InvalidationResult, error) {
	var out InvalidationResult
	if err := c.post(ctx, "/v1/auth/invalidate", map[string]string{"token": token}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser registers a new user with one of the closed-set roles.
func (c *Client) CreateUser(ctx context.Context, email, password, role string) (*CreateUserResult, error) {
	var out CreateUserResult
	err := c.post(ctx, "/v1/users",
		map[string]string{"email": email, "password": password, "role": role}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// post is the single helper for RPC calls. Responses below 500 carry the
// structured result (including business failures); 5xx means the service
// could not answer and is surfaced as an error for retry/backoff.
func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity service unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("identity service error (%d): %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
