package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/harbourlight/accountd/internal/accounts/domain"
	accountmail "github.com/harbourlight/accountd/internal/accounts/mail"
	"github.com/harbourlight/accountd/internal/accounts/store"
	"github.com/harbourlight/accountd/pkg/cryptox"
	"github.com/harbourlight/accountd/pkg/idx"
	"github.com/harbourlight/accountd/pkg/slogx"
)

var (
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrConfirmationNotFound = errors.New("confirmation not found")
	ErrWeakPassword         = errors.New("password too weak")
)

// DefaultConfirmationTTL bounds how long an emailed confirmation link stays
// redeemable.
const DefaultConfirmationTTL = 24 * time.Hour

type ConfirmationService struct {
	Store  store.Store
	Mailer accountmail.Mailer

	TTL     time.Duration // zero means DefaultConfirmationTTL
	From    string        // sender address for confirmation mail
	Subject string        // subject line for confirmation mail
}

func (s *ConfirmationService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultConfirmationTTL
	}
	return s.TTL
}

// Request issues a fresh confirmation token for the account behind email and
// mails a link built from baseURL. Whether the address belongs to an account
// is deliberately not revealed: unknown addresses return nil like known
// ones, only a malformed address is an error.
func (s *ConfirmationService) Request(ctx context.Context, email, baseURL string) error {
	log := slogx.FromContext(ctx)

	email = strings.TrimSpace(strings.ToLower(email))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return ErrInvalidEmail
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Uniform response; don't leak which addresses exist.
			log.Debug("confirmation requested for unknown email")
			return nil
		}
		log.Error("failed to fetch user for confirmation", "err", err)
		return err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate confirmation token", "err", err)
		return err
	}

	confirmation := domain.Confirmation{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.ttl()),
	}
	if err := s.Store.Confirmations().CreateConfirmation(ctx, confirmation); err != nil {
		log.Error("failed to store confirmation", "err", err)
		return err
	}

	link := strings.TrimSuffix(baseURL, "/") + "/v1/users/confirm/" + token
	msg := accountmail.Message{
		From:    s.From,
		To:      user.Email,
		Subject: s.Subject,
		Body:    "Follow this link to confirm your email address:\n\n" + link + "\n",
	}
	if err := s.Mailer.Send(ctx, msg); err != nil {
		log.Error("failed to send confirmation mail", "user_id", user.ID, "err", err)
		return err
	}

	log.Info("confirmation mail sent",
		"user_id", user.ID,
		"confirmation_id", confirmation.ID,
		"expires_at", confirmation.ExpiresAt,
	)
	return nil
}

// Check verifies that the token exists, is still redeemable, and belongs to
// the calling user. Read-only: the token is not consumed.
func (s *ConfirmationService) Check(ctx context.Context, token, userID string) error {
	_, err := s.redeemable(ctx, token, userID)
	return err
}

// ChangePassword consumes the confirmation token and sets a new password
// for the caller. The token becomes unredeemable afterwards.
func (s *ConfirmationService) ChangePassword(
	ctx context.Context,
	token, userID, newPassword string,
) error {
	log := slogx.FromContext(ctx)

	confirmation, err := s.redeemable(ctx, token, userID)
	if err != nil {
		return err
	}

	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}

	passwordHash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		log.Error("failed to hash new password", "err", err)
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Confirmations().MarkConfirmationUsed(ctx, confirmation.ID); err != nil {
			return err
		}
		return tx.Users().UpdatePasswordHash(ctx, userID, passwordHash)
	})
	if err != nil {
		log.Error("failed to change password", "user_id", userID, "err", err)
		return err
	}

	log.Info("password changed", "user_id", userID, "confirmation_id", confirmation.ID)
	return nil
}

// redeemable looks the token up by fingerprint and enforces ownership,
// expiry and single use. Every failure collapses into
// ErrConfirmationNotFound so callers can't probe other users' tokens.
func (s *ConfirmationService) redeemable(
	ctx context.Context,
	token, userID string,
) (domain.Confirmation, error) {
	log := slogx.FromContext(ctx)

	if token == "" || userID == "" {
		return domain.Confirmation{}, ErrConfirmationNotFound
	}

	confirmation, err := s.Store.Confirmations().GetConfirmationByTokenHash(
		ctx, cryptox.FingerprintToken(token),
	)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Confirmation{}, ErrConfirmationNotFound
		}
		log.Error("failed to fetch confirmation", "err", err)
		return domain.Confirmation{}, err
	}

	if confirmation.UserID != userID {
		log.Warn("confirmation presented by wrong user",
			"confirmation_id", confirmation.ID,
			"presented_by", userID,
		)
		return domain.Confirmation{}, ErrConfirmationNotFound
	}
	if !confirmation.Redeemable(time.Now()) {
		return domain.Confirmation{}, ErrConfirmationNotFound
	}

	return confirmation, nil
}
