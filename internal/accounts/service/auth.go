package service

import (
	"context"
	"errors"
	"time"

	"github.com/harbourlight/accountd/internal/accounts/domain"
	"github.com/harbourlight/accountd/internal/accounts/store"
	"github.com/harbourlight/accountd/pkg/cryptox"
	"github.com/harbourlight/accountd/pkg/httpx"
	"github.com/harbourlight/accountd/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidToken       = errors.New("invalid_token")
)

type AuthService struct {
	Store store.Store
}

// LoginResult carries the bearer token plus the last-login timestamp as it
// stood *before* this login.
type LoginResult struct {
	Token     string
	LastLogin *time.Time
}

// Login verifies the credential pair and returns the user's access token,
// creating it on first login. Repeat logins return the identical token
// value. The get-or-create runs in a transaction so concurrent first logins
// cannot mint two tokens for one user.
func (s *AuthService) Login(ctx context.Context, handle, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user for login", "err", err)
		return LoginResult{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		log.Info("login failed", "handle", handle)
		return LoginResult{}, ErrInvalidCredentials
	}

	previousLogin := user.LastLoginAt

	var token string
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.AccessTokens().GetAccessTokenByUserID(ctx, user.ID)
		if err == nil {
			token = existing.Token
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		fresh, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return err
		}
		if err := tx.AccessTokens().CreateAccessToken(ctx, domain.AccessToken{
			UserID: user.ID,
			Token:  fresh,
		}); err != nil {
			return err
		}
		token = fresh
		return nil
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost the first-login race; the winner's token is the token.
		existing, getErr := s.Store.AccessTokens().GetAccessTokenByUserID(ctx, user.ID)
		if getErr != nil {
			return LoginResult{}, getErr
		}
		token = existing.Token
	} else if err != nil {
		log.Error("failed to get or create access token", "user_id", user.ID, "err", err)
		return LoginResult{}, err
	}

	if err := s.Store.Users().UpdateLastLogin(ctx, user.ID); err != nil {
		log.Error("failed to stamp last login", "user_id", user.ID, "err", err)
		return LoginResult{}, err
	}

	log.Info("login succeeded", "user_id", user.ID, "handle", user.Handle)
	return LoginResult{Token: token, LastLogin: previousLogin}, nil
}

// VerifyToken resolves a bearer token to its owning identity. It satisfies
// httpx.TokenVerifier so the authn middleware can gate protected routes.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (httpx.Identity, error) {
	if token == "" {
		return httpx.Identity{}, ErrInvalidToken
	}

	record, err := s.Store.AccessTokens().GetAccessTokenByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return httpx.Identity{}, ErrInvalidToken
		}
		return httpx.Identity{}, err
	}

	user, err := s.Store.Users().GetUserByID(ctx, record.UserID)
	if err != nil {
		return httpx.Identity{}, err
	}

	return httpx.Identity{UserID: user.ID, Handle: user.Handle}, nil
}
