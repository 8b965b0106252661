package store

import (
	"context"
	"errors"

	"github.com/harbourlight/accountd/internal/accounts/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	AccessTokens() AccessTokens
	Confirmations() Confirmations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., the
	// access token get-or-create on login).
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByHandle is the public profile lookup.
	GetUserByHandle(ctx context.Context, handle string) (domain.User, error)

	// GetUserByEmail is used by the confirmation-request flow.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns all users ordered by handle.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the handle or email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile mutates display_name and bio and bumps updated_at.
	// Handle and email are immutable through this store.
	UpdateProfile(ctx context.Context, userID, displayName, bio string) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// UpdateLastLogin stamps last_login_at.
	UpdateLastLogin(ctx context.Context, userID string) error
}

type AccessTokens interface {
	// GetAccessTokenByUserID returns the user's token record if one exists.
	GetAccessTokenByUserID(ctx context.Context, userID string) (domain.AccessToken, error)

	// GetAccessTokenByToken resolves a bearer token to its record.
	GetAccessTokenByToken(ctx context.Context, token string) (domain.AccessToken, error)

	// CreateAccessToken inserts the one-per-user token row. The user_id
	// primary key makes a duplicate insert fail with ErrAlreadyExists.
	CreateAccessToken(ctx context.Context, t domain.AccessToken) error
}

type Confirmations interface {
	// CreateConfirmation stores a freshly minted confirmation token.
	CreateConfirmation(ctx context.Context, c domain.Confirmation) error

	// GetConfirmationByTokenHash fetches a confirmation by its fingerprint.
	GetConfirmationByTokenHash(ctx context.Context, hash string) (domain.Confirmation, error)

	// MarkConfirmationUsed sets used_at to prevent re-use.
	MarkConfirmationUsed(ctx context.Context, id string) error

	// DeleteExpiredConfirmations is housekeeping.
	DeleteExpiredConfirmations(ctx context.Context) error
}
