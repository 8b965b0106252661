package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harbourlight/accountd/internal/accounts/mail"
	"github.com/harbourlight/accountd/internal/accounts/service"
	"github.com/harbourlight/accountd/internal/accounts/store/drivers/sqlite"
	"github.com/harbourlight/accountd/pkg/accountsdk"
	"github.com/harbourlight/accountd/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

// newTestServer spins up the full router against an in-memory store. The
// returned recorder captures confirmation mail.
func newTestServer(t *testing.T) (*httptest.Server, *mail.Recorder) {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	rec := &mail.Recorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := NewRouter("test", st, logger)
	router.UserService = &service.UserService{Store: st}
	router.AuthService = &service.AuthService{Store: st}
	router.ConfirmationService = &service.ConfirmationService{
		Store:  st,
		Mailer: rec,
	}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, rec
}

func registerAccount(t *testing.T, client *accountsdk.SDKClient, handle, email, password string) {
	t.Helper()

	err := client.Register(context.Background(), accountsdk.RegisterRequest{
		Handle:   handle,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
}

func TestRegisterAndList(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	client := accountsdk.NewSDKClient(srv.URL)

	err := client.Register(ctx, accountsdk.RegisterRequest{
		Handle:   "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
		Bio:      "first account",
	})
	require.NoError(t, err)

	user, err := client.GetProfile(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Handle)
	require.Equal(t, "alice", user.DisplayName, "display name defaults to handle")
	require.Nil(t, user.LastLogin)

	t.Run("listing includes the new account", func(t *testing.T) {
		users, err := client.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.Equal(t, "alice", users[0].Handle)
		require.Equal(t, "first account", users[0].Bio)
	})

	t.Run("duplicate handle fails with field reasons", func(t *testing.T) {
		err := client.Register(ctx, accountsdk.RegisterRequest{
			Handle:   "alice",
			Email:    "other@example.com",
			Password: "another password",
		})

		var apiErr *accountsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, accountsdk.ErrorCodeValidationFailed, apiErr.Code)
		require.Contains(t, apiErr.Fields, "handle")
	})
}

func TestLoginFlow(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	client := accountsdk.NewSDKClient(srv.URL)

	registerAccount(t, client, "alice", "alice@example.com", "correct horse battery")

	_, first, err := client.Login(ctx, "alice", "correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, first.Token)
	require.Nil(t, first.LastLogin, "first login reports no previous login")

	_, second, err := client.Login(ctx, "alice", "correct horse battery")
	require.NoError(t, err)
	require.Equal(t, first.Token, second.Token, "token survives re-login")
	require.NotNil(t, second.LastLogin)

	t.Run("wrong password is a 401", func(t *testing.T) {
		_, _, err := client.Login(ctx, "alice", "wrong password")

		var apiErr *accountsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		require.Equal(t, accountsdk.ErrorCodeInvalidCredentials, apiErr.Code)
	})
}

func TestBearerAuthRequired(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("missing token", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/v1/users/me")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Contains(t, resp.Header.Get("WWW-Authenticate"), "Bearer")
	})

	t.Run("garbage token", func(t *testing.T) {
		session := accountsdk.NewSDKClient(srv.URL).NewSessionFromToken("garbage")
		_, err := session.Me(context.Background())

		var apiErr *accountsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})
}

func TestProfiles(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	client := accountsdk.NewSDKClient(srv.URL)

	registerAccount(t, client, "alice", "alice@example.com", "correct horse battery")
	session, _, err := client.Login(ctx, "alice", "correct horse battery")
	require.NoError(t, err)

	t.Run("public profile by handle", func(t *testing.T) {
		user, err := client.GetProfile(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, "alice", user.Handle)
	})

	t.Run("unknown handle is a 404", func(t *testing.T) {
		_, err := client.GetProfile(ctx, "nobody")

		var apiErr *accountsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		require.Equal(t, accountsdk.ErrorCodeNotFound, apiErr.Code)
	})

	t.Run("own profile", func(t *testing.T) {
		me, err := session.Me(ctx)
		require.NoError(t, err)
		require.Equal(t, "alice", me.Handle)
	})

	t.Run("edit merges absent fields", func(t *testing.T) {
		bio := "hello"
		updated, err := session.UpdateProfile(ctx, accountsdk.EditProfileRequest{Bio: &bio})
		require.NoError(t, err)
		require.Equal(t, "hello", updated.Bio)
		require.Equal(t, "alice", updated.DisplayName)

		name := "Alice"
		updated, err = session.UpdateProfile(ctx, accountsdk.EditProfileRequest{DisplayName: &name})
		require.NoError(t, err)
		require.Equal(t, "Alice", updated.DisplayName)
		require.Equal(t, "hello", updated.Bio)
	})

	t.Run("edit cannot change handle or email", func(t *testing.T) {
		// Unknown payload fields are dropped, so a payload smuggling
		// identity fields past the editable ones must leave them intact.
		body := `{"handle":"mallory","email":"evil@example.com","display_name":"Evil"}`
		req, err := http.NewRequestWithContext(ctx, http.MethodPatch, srv.URL+"/v1/users/me", strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+session.Token())

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		me, err := session.Me(ctx)
		require.NoError(t, err)
		require.Equal(t, "alice", me.Handle, "handle must survive the edit")
		require.Equal(t, "Evil", me.DisplayName, "editable fields still apply")

		_, err = client.GetProfile(ctx, "mallory")
		var apiErr *accountsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode, "smuggled handle must not resolve")

		// Credentials are untouched as well
		_, _, err = client.Login(ctx, "alice", "correct horse battery")
		require.NoError(t, err)
	})

	t.Run("empty display name rejected", func(t *testing.T) {
		empty := ""
		_, err := session.UpdateProfile(ctx, accountsdk.EditProfileRequest{DisplayName: &empty})

		var apiErr *accountsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, accountsdk.ErrorCodeValidationFailed, apiErr.Code)
		require.Contains(t, apiErr.Fields, "display_name")
	})
}

func TestConfirmationFlow(t *testing.T) {
	ctx := context.Background()
	srv, rec := newTestServer(t)
	client := accountsdk.NewSDKClient(srv.URL)

	registerAccount(t, client, "alice", "alice@example.com", "old-password-123")
	session, _, err := client.Login(ctx, "alice", "old-password-123")
	require.NoError(t, err)

	require.NoError(t, client.RequestConfirmation(ctx, "alice@example.com"))

	sent := rec.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, "alice@example.com", sent[0].To)

	// The emailed link points back at this server.
	const marker = "/v1/users/confirm/"
	require.Contains(t, sent[0].Body, srv.URL+marker)
	i := strings.Index(sent[0].Body, marker)
	token := strings.TrimSpace(sent[0].Body[i+len(marker):])

	require.NoError(t, session.CheckConfirmation(ctx, token))
	require.NoError(t, session.ChangePassword(ctx, token, "new-password-456"))

	t.Run("old password stops working", func(t *testing.T) {
		_, _, err := client.Login(ctx, "alice", "old-password-123")

		var apiErr *accountsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	})

	t.Run("new password works", func(t *testing.T) {
		_, _, err := client.Login(ctx, "alice", "new-password-456")
		require.NoError(t, err)
	})

	t.Run("token cannot be replayed", func(t *testing.T) {
		err := session.ChangePassword(ctx, token, "third-password-789")

		var apiErr *accountsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, accountsdk.ErrorCodeInvalidRequest, apiErr.Code)
	})

	t.Run("used token fails the check", func(t *testing.T) {
		err := session.CheckConfirmation(ctx, token)

		var apiErr *accountsdk.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})
}

func TestConfirmationDoesNotLeakAddresses(t *testing.T) {
	ctx := context.Background()
	srv, rec := newTestServer(t)
	client := accountsdk.NewSDKClient(srv.URL)

	registerAccount(t, client, "alice", "alice@example.com", "some-password")

	// Known and unknown addresses answer identically.
	require.NoError(t, client.RequestConfirmation(ctx, "alice@example.com"))
	require.NoError(t, client.RequestConfirmation(ctx, "stranger@example.com"))

	sent := rec.Sent()
	require.Len(t, sent, 1, "only the registered address gets mail")
	require.Equal(t, "alice@example.com", sent[0].To)
}

func TestHealthEndpoints(t *testing.T) {
	ctx := context.Background()
	srv, _ := newTestServer(t)
	client := accountsdk.NewSDKClient(srv.URL)

	live, err := client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}
