package accounts_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoginRateLimiting verifies that the login endpoint enforces its strict
// rate limit under the production defaults. A deliberately wrong password
// keeps every attempt cheap while still counting against the limit.
func TestLoginRateLimiting(t *testing.T) {
	baseURL, cleanup := setupAccountContainerWithDefaultRateLimits(t)
	defer cleanup()

	ctx := context.Background()
	loginURL := baseURL + "/v1/users/login"

	body, err := json.Marshal(map[string]string{
		"handle":   "nobody",
		"password": "Wrong123!pass",
	})
	require.NoError(t, err)

	attempt := func() *http.Response {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, loginURL, bytes.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return resp
	}

	// The strict profile allows 5 requests per minute with a burst of 5.
	for i := 1; i <= 5; i++ {
		resp := attempt()
		resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode,
			fmt.Sprintf("Attempt %d should pass the rate limiter", i))
	}

	resp := attempt()
	defer resp.Body.Close()

	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode, "Sixth attempt should be rate limited")
	require.NotEmpty(t, resp.Header.Get("Retry-After"))
	require.Equal(t, "5", resp.Header.Get("X-RateLimit-Limit"))
	require.NotEmpty(t, resp.Header.Get("X-RateLimit-Window"))

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, "rate_limit_exceeded", payload["error"])
}

// TestHealthEndpointsAreLenient verifies that the probes tolerate the kind
// of polling an orchestrator produces.
func TestHealthEndpointsAreLenient(t *testing.T) {
	baseURL, cleanup := setupAccountContainerWithDefaultRateLimits(t)
	defer cleanup()

	ctx := context.Background()

	for i := 0; i < 30; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/livez", nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode,
			fmt.Sprintf("Probe %d should not be rate limited", i+1))
	}
}
