package crmsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the CRM service. It provides the
// unauthenticated surface (register, token, health) and can create
// authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a CRM service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account.
func (c *SDKClient) Register(ctx context.Context, username, password string) (*RegisterResponse, error) {
	resp, err := c.postJSON(ctx, "/v1/register", RegisterRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Token exchanges username/password for a token pair. Pass otp when the
// account has TOTP active, otherwise "".
func (c *SDKClient) Token(ctx context.Context, username, password, otp string) (*TokenResponse, error) {
	resp, err := c.postJSON(ctx, "/v1/auth/token", TokenRequest{
		Username: username,
		Password: password,
		OTP:      otp,
	})
	if err != nil {
		return nil, err
	}

	var out TokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new access token.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	resp, err := c.postJSON(ctx, "/v1/auth/refresh", RefreshRequest{Refresh: refreshToken})
	if err != nil {
		return nil, err
	}

	var out TokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Revoke invalidates a refresh token. Revoking an unknown token succeeds.
func (c *SDKClient) Revoke(ctx context.Context, refreshToken string) error {
	resp, err := c.postJSON(ctx, "/v1/auth/revoke", RefreshRequest{Refresh: refreshToken})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// Login registers nothing; it authenticates an existing account and returns
// an authenticated Session.
func (c *SDKClient) Login(ctx context.Context, username, password, otp string) (*Session, error) {
	tokens, err := c.Token(ctx, username, password, otp)
	if err != nil {
		return nil, err
	}
	return newSession(c, tokens), nil
}

// Health checks the liveness endpoint.
func (c *SDKClient) Health(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/health", nil, nil)
	if err != nil {
		return nil, err
	}

	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// JWKS fetches the public signing keys.
func (c *SDKClient) JWKS(ctx context.Context) (*JWKSResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/.well-known/jwks.json", nil, nil)
	if err != nil {
		return nil, err
	}

	var out JWKSResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *SDKClient) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return c.doRequest(ctx, http.MethodPost, path, bytes.NewReader(payload), map[string]string{
		"Content-Type": "application/json",
	})
}
