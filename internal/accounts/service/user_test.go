package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/harbourlight/accountd/internal/accounts/domain"
	"github.com/harbourlight/accountd/internal/accounts/store"
	"github.com/harbourlight/accountd/internal/accounts/store/drivers/sqlite"
	"github.com/harbourlight/accountd/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func registerTestUser(t *testing.T, st store.Store, handle, email, password string) domain.User {
	t.Helper()

	svc := &UserService{Store: st}
	user, err := svc.Register(context.Background(), RegisterParams{
		Handle:   handle,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	t.Run("rejects malformed fields with per-field reasons", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterParams{
			Handle:   "x",
			Email:    "not-an-email",
			Password: "short",
		})

		var fields FieldErrors
		require.ErrorAs(t, err, &fields)
		require.Contains(t, fields, "handle")
		require.Contains(t, fields, "email")
		require.Contains(t, fields, "password")
	})

	t.Run("rejects handles with disallowed characters", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterParams{
			Handle:   "bad handle!",
			Email:    "ok@example.com",
			Password: "long-enough-password",
		})

		var fields FieldErrors
		require.ErrorAs(t, err, &fields)
		require.Contains(t, fields, "handle")
		require.NotContains(t, fields, "email")
	})
}

func TestRegisterDefaultsDisplayNameToHandle(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	user, err := svc.Register(ctx, RegisterParams{
		Handle:   "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.Equal(t, "alice", user.DisplayName)

	stored, err := st.Users().GetUserByHandle(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", stored.DisplayName)
	require.NotEqual(t, "correct horse battery", stored.PasswordHash)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	registerTestUser(t, st, "alice", "alice@example.com", "first-password")

	t.Run("duplicate handle", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterParams{
			Handle:   "alice",
			Email:    "other@example.com",
			Password: "another-password",
		})

		var fields FieldErrors
		require.ErrorAs(t, err, &fields)
		require.Contains(t, fields, "handle")
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterParams{
			Handle:   "alice2",
			Email:    "alice@example.com",
			Password: "another-password",
		})

		var fields FieldErrors
		require.ErrorAs(t, err, &fields)
		require.Contains(t, fields, "email")
	})

	t.Run("email comparison is case-insensitive", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterParams{
			Handle:   "alice3",
			Email:    "ALICE@example.com",
			Password: "another-password",
		})

		var fields FieldErrors
		require.ErrorAs(t, err, &fields)
		require.Contains(t, fields, "email")
	})
}

// racingStore hides existing rows from the pre-insert uniqueness checks so
// the insert itself collides, like a registration won by a concurrent
// request between check and create.
type racingStore struct {
	store.Store
	racing *bool
}

func (s racingStore) Users() store.Users {
	return racingUsers{Users: s.Store.Users(), racing: s.racing}
}

type racingUsers struct {
	store.Users
	racing *bool
}

func (u racingUsers) GetUserByHandle(ctx context.Context, handle string) (domain.User, error) {
	if *u.racing {
		return domain.User{}, store.ErrNotFound
	}
	return u.Users.GetUserByHandle(ctx, handle)
}

func (u racingUsers) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	if *u.racing {
		return domain.User{}, store.ErrNotFound
	}
	return u.Users.GetUserByEmail(ctx, email)
}

func (u racingUsers) CreateUser(ctx context.Context, usr domain.User) error {
	*u.racing = false
	return u.Users.CreateUser(ctx, usr)
}

func TestRegisterRaceBlamesCollidingField(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	registerTestUser(t, st, "winner", "shared@example.com", "some-password")

	racing := true
	svc := &UserService{Store: racingStore{Store: st, racing: &racing}}

	_, err := svc.Register(ctx, RegisterParams{
		Handle:   "fresh",
		Email:    "shared@example.com",
		Password: "another-password",
	})

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	require.Contains(t, fields, "email")
	require.NotContains(t, fields, "handle", "the handle did not collide")
}

func TestGetUserByHandleNotFound(t *testing.T) {
	svc := &UserService{Store: newTestStore(t)}

	_, err := svc.GetUserByHandle(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileMergesAbsentFields(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	user := registerTestUser(t, st, "bob", "bob@example.com", "some-password")

	bio := "brewing enthusiast"
	updated, err := svc.UpdateProfile(ctx, user.ID, EditParams{Bio: &bio})
	require.NoError(t, err)
	require.Equal(t, "bob", updated.DisplayName)
	require.Equal(t, bio, updated.Bio)

	name := "Bob"
	updated, err = svc.UpdateProfile(ctx, user.ID, EditParams{DisplayName: &name})
	require.NoError(t, err)
	require.Equal(t, "Bob", updated.DisplayName)
	require.Equal(t, bio, updated.Bio, "bio untouched when absent")
}

func TestUpdateProfileValidation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &UserService{Store: st}

	user := registerTestUser(t, st, "carol", "carol@example.com", "some-password")

	empty := ""
	_, err := svc.UpdateProfile(ctx, user.ID, EditParams{DisplayName: &empty})

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	require.Contains(t, fields, "display_name")

	// The failed update must not have touched the stored record.
	stored, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "carol", stored.DisplayName)
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc := &UserService{Store: newTestStore(t)}

	name := "ghost"
	_, err := svc.UpdateProfile(context.Background(), "missing-id", EditParams{DisplayName: &name})
	require.ErrorIs(t, err, ErrUserNotFound)
}
