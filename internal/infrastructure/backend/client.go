// Package backend is the outbound HTTP boundary to the hospital-management
// API: a JSON client plus the transport decorators that attach the bearer
// token and react to authorization failures.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rachitkhandelwal41/hospital-portal/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Client talks to the hospital backend. It implements ports.Gateway.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient builds a Client whose transport chain is
// BearerTransport → StatusInterceptor → net/http default transport.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: defaultTimeout,
			Transport: &BearerTransport{
				Base: &StatusInterceptor{},
			},
		},
	}
}

// authResponse is the envelope returned by login and register.
type authResponse struct {
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
	Message string       `json:"message"`
}

// apiError is the backend's error envelope. Some endpoints use "message",
// older ones "error".
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e apiError) text(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	return fallback
}

// Login exchanges credentials for a user and a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	body := domain.Credentials{Email: email, Password: password}

	resp, err := c.post(ctx, "/api/auth/login", body)
	if err != nil {
		return nil, "", err
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, readError(resp, "login rejected"))
	}

	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, "", fmt.Errorf("decode login response: %w", err)
	}
	if out.User == nil || out.Token == "" {
		return nil, "", fmt.Errorf("login response missing user or token")
	}
	return out.User, out.Token, nil
}

// Register creates an account. The returned token may be empty when the
// backend requires a fresh sign-in after registration.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.User, string, error) {
	resp, err := c.post(ctx, "/api/auth/register", reg)
	if err != nil {
		return nil, "", err
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict:
		return nil, "", fmt.Errorf("%w: %s", domain.ErrUserExists, readError(resp, "account already exists"))
	default:
		return nil, "", fmt.Errorf("registration failed: %s", readError(resp, resp.Status))
	}

	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, "", fmt.Errorf("decode register response: %w", err)
	}
	return out.User, out.Token, nil
}

// Me probes the backend for the identity behind a token. Used on session
// restore before any session holds the token, hence the explicit argument.
func (c *Client) Me(ctx context.Context, token string) (*domain.User, error) {
	req, err := http.NewRequestWithContext(WithToken(ctx, token), http.MethodGet, c.baseURL+"/api/auth/me", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, domain.ErrSessionExpired
	case http.StatusForbidden:
		return nil, domain.ErrForbidden
	default:
		return nil, fmt.Errorf("identity probe failed: %s", readError(resp, resp.Status))
	}

	var user domain.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	return &user, nil
}

// Departments fetches the department reference list. Callers substitute
// domain.FallbackDepartments on error; registration must not block on this.
func (c *Client) Departments(ctx context.Context) ([]domain.Department, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/departments", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer closeBody(resp)

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, domain.ErrSessionExpired
	case http.StatusForbidden:
		return nil, domain.ErrForbidden
	default:
		return nil, fmt.Errorf("departments fetch failed: %s", readError(resp, resp.Status))
	}

	var deps []domain.Department
	if err := json.NewDecoder(resp.Body).Decode(&deps); err != nil {
		return nil, fmt.Errorf("decode departments: %w", err)
	}
	return deps, nil
}

func (c *Client) post(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	return resp, nil
}

func readError(resp *http.Response, fallback string) string {
	var apiErr apiError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
		return fallback
	}
	return apiErr.text(fallback)
}

func closeBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
