package accountsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SDKClient is a client for the account service. It provides access to
// unauthenticated operations and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new account service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account. The service responds with a bare 201;
// fetch the public record with GetProfile if it is needed afterwards.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/users", req)
	if err != nil {
		return err
	}

	return checkStatus(resp, http.StatusCreated)
}

// ListUsers returns the public records of every account.
func (c *SDKClient) ListUsers(ctx context.Context) ([]UserRecord, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/users", nil, nil)
	if err != nil {
		return nil, err
	}

	var users []UserRecord
	if err := decodeJSON(resp, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

// GetProfile returns the public record for a single handle.
func (c *SDKClient) GetProfile(ctx context.Context, handle string) (*UserRecord, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(handle), nil, nil)
	if err != nil {
		return nil, err
	}

	var user UserRecord
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges a handle/password pair for an access token and returns an
// authenticated Session. The LoginResponse carries the previous last-login
// timestamp.
func (c *SDKClient) Login(ctx context.Context, handle, password string) (*Session, *LoginResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/users/login", LoginRequest{
		Handle:   handle,
		Password: password,
	})
	if err != nil {
		return nil, nil, err
	}

	var loginResp LoginResponse
	if err := decodeJSON(resp, &loginResp, http.StatusOK); err != nil {
		return nil, nil, err
	}

	return c.NewSessionFromToken(loginResp.Token), &loginResp, nil
}

// RequestConfirmation asks the service to send a confirmation link to the
// given email address. The service responds identically whether or not the
// address belongs to an account.
func (c *SDKClient) RequestConfirmation(ctx context.Context, email string) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/users/confirm", ConfirmRequest{Email: email})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusOK)
}

// NewSessionFromToken creates an authenticated session from an existing
// access token, e.g. one stored from a previous login.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return &Session{
		client: c,
		token:  token,
	}
}

// doJSON marshals body as JSON and performs an unauthenticated request.
func (c *SDKClient) doJSON(ctx context.Context, method, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	return c.doRequest(ctx, method, path, bytes.NewReader(payload), map[string]string{
		"Content-Type": "application/json",
	})
}
