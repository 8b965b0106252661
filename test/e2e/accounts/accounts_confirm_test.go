package accounts_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/harbourlight/accountd/pkg/accountsdk"
	"github.com/stretchr/testify/require"
)

// TestConfirmationEndpoints exercises the email confirmation endpoints at the
// HTTP contract level. The container logs confirmation mail instead of
// sending it, so the token itself is not reachable from out here; the
// in-process tests cover the full redemption flow.
func TestConfirmationEndpoints(t *testing.T) {
	baseURL, cleanup := setupAccountContainer(t)
	defer cleanup()

	client := accountsdk.NewSDKClient(baseURL)
	ctx := context.Background()

	registerTestAccount(t, client)
	session := loginTestAccount(t, client)

	t.Run("RequestForKnownAddress", func(t *testing.T) {
		err := client.RequestConfirmation(ctx, testEmail)
		require.NoError(t, err)
	})

	t.Run("RequestForUnknownAddress", func(t *testing.T) {
		// The response must not reveal whether the address is registered.
		err := client.RequestConfirmation(ctx, "stranger@example.com")
		require.NoError(t, err)
	})

	t.Run("RequestForMalformedAddress", func(t *testing.T) {
		err := client.RequestConfirmation(ctx, "not-an-email")
		require.Error(t, err)

		var apiErr *accountsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, accountsdk.ErrorCodeValidationFailed, apiErr.Code)
		require.Contains(t, apiErr.Fields, "email")
	})

	t.Run("CheckRequiresAuth", func(t *testing.T) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/v1/users/confirm/bogus", nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("CheckUnknownToken", func(t *testing.T) {
		err := session.CheckConfirmation(ctx, "bogus-token")
		require.Error(t, err)

		var apiErr *accountsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})

	t.Run("ChangePasswordUnknownToken", func(t *testing.T) {
		err := session.ChangePassword(ctx, "bogus-token", "Another123!pass")
		require.Error(t, err)

		var apiErr *accountsdk.APIError
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, accountsdk.ErrorCodeInvalidRequest, apiErr.Code)
	})
}
