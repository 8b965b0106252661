package accountsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Session is an authenticated view of the account service, bound to a single
// access token obtained via login.
type Session struct {
	client *SDKClient
	token  string
}

// Token returns the session's access token, e.g. for storing between runs.
func (s *Session) Token() string {
	return s.token
}

// Me returns the caller's own public record.
func (s *Session) Me(ctx context.Context) (*UserRecord, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/users/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var user UserRecord
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile modifies the caller's display name and bio. Fields left nil
// keep their current value. Returns the updated record.
func (s *Session) UpdateProfile(ctx context.Context, req EditProfileRequest) (*UserRecord, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPatch, "/v1/users/me", req)
	if err != nil {
		return nil, err
	}

	var user UserRecord
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// CheckConfirmation verifies that a confirmation token from an emailed link
// is valid for the caller and still redeemable.
func (s *Session) CheckConfirmation(ctx context.Context, token string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/users/confirm/"+url.PathEscape(token), nil, nil)
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusOK)
}

// ChangePassword redeems a confirmation token to set a new password. The
// token is consumed whether or not it has been checked first.
func (s *Session) ChangePassword(ctx context.Context, token, newPassword string) error {
	resp, err := s.doAuthJSON(ctx, http.MethodPost,
		"/v1/users/confirm/"+url.PathEscape(token)+"/changepass",
		ChangePasswordRequest{Password: newPassword})
	if err != nil {
		return err
	}
	return checkStatus(resp, http.StatusOK)
}

// doAuthJSON marshals body as JSON and performs an authenticated request.
func (s *Session) doAuthJSON(ctx context.Context, method, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	return s.doAuthRequest(ctx, method, path, bytes.NewReader(payload), map[string]string{
		"Content-Type": "application/json",
	})
}
