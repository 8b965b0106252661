package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/harbourlight/accountd/internal/accounts/domain"
	"github.com/harbourlight/accountd/internal/accounts/store"
	"github.com/harbourlight/accountd/pkg/cryptox"
	"github.com/harbourlight/accountd/pkg/idx"
	"github.com/harbourlight/accountd/pkg/slogx"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

const (
	minPasswordLength  = 8
	maxDisplayNameRune = 64
	maxBioRune         = 500
)

var handlePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

// FieldErrors carries field-level validation failures back to the handler,
// which renders them as a 400 with per-field detail.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for field, reason := range e {
		parts = append(parts, fmt.Sprintf("%s: %s", field, reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type UserService struct {
	Store store.Store
}

type RegisterParams struct {
	Handle      string
	Email       string
	Password    string
	DisplayName string
	Bio         string
}

// Register validates the candidate account and persists it with a hashed
// password, returning the created user. Uniqueness failures surface as
// FieldErrors like any other validation problem so the response shape
// stays uniform.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	log := slogx.FromContext(ctx)

	fields := FieldErrors{}
	p.Handle = strings.TrimSpace(p.Handle)
	p.Email = strings.TrimSpace(strings.ToLower(p.Email))
	p.DisplayName = strings.TrimSpace(p.DisplayName)

	if !handlePattern.MatchString(p.Handle) {
		fields["handle"] = "must be 3-32 characters of letters, digits or underscore"
	}
	if _, err := mail.ParseAddress(p.Email); err != nil || p.Email == "" {
		fields["email"] = "must be a valid email address"
	}
	if len(p.Password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("must be at least %d characters", minPasswordLength)
	}
	if len([]rune(p.DisplayName)) > maxDisplayNameRune {
		fields["display_name"] = fmt.Sprintf("must be at most %d characters", maxDisplayNameRune)
	}
	if len([]rune(p.Bio)) > maxBioRune {
		fields["bio"] = fmt.Sprintf("must be at most %d characters", maxBioRune)
	}
	if len(fields) > 0 {
		return domain.User{}, fields
	}

	// Pre-check uniqueness for precise field attribution. The unique
	// constraints still back this up under concurrent registration.
	if _, err := s.Store.Users().GetUserByHandle(ctx, p.Handle); err == nil {
		fields["handle"] = "is already taken"
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}
	if _, err := s.Store.Users().GetUserByEmail(ctx, p.Email); err == nil {
		fields["email"] = "is already registered"
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}
	if len(fields) > 0 {
		return domain.User{}, fields
	}

	passwordHash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		log.Error("failed to hash password", "err", err)
		return domain.User{}, err
	}

	if p.DisplayName == "" {
		p.DisplayName = p.Handle
	}

	user := domain.User{
		ID:           idx.New().String(),
		Handle:       p.Handle,
		Email:        p.Email,
		PasswordHash: passwordHash,
		DisplayName:  p.DisplayName,
		Bio:          p.Bio,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race against a concurrent registration. Look both
			// uniques up again so the error blames the colliding field.
			raced := FieldErrors{}
			if _, lookupErr := s.Store.Users().GetUserByHandle(ctx, p.Handle); lookupErr == nil {
				raced["handle"] = "is already taken"
			}
			if _, lookupErr := s.Store.Users().GetUserByEmail(ctx, p.Email); lookupErr == nil {
				raced["email"] = "is already registered"
			}
			if len(raced) == 0 {
				// Winner vanished before we could look; stay generic.
				raced["handle"] = "is already taken"
				raced["email"] = "is already registered"
			}
			return domain.User{}, raced
		}
		log.Error("failed to create user", "handle", p.Handle, "err", err)
		return domain.User{}, err
	}

	log.Info("user registered", "user_id", user.ID, "handle", user.Handle)
	return user, nil
}

// ListUsers returns all accounts.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetUserByHandle is the public profile lookup.
func (s *UserService) GetUserByHandle(ctx context.Context, handle string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

type EditParams struct {
	DisplayName *string
	Bio         *string
}

// UpdateProfile edits the caller's own display fields. The target user is
// always the authenticated identity; handle and email cannot change here,
// whatever the payload claims.
func (s *UserService) UpdateProfile(
	ctx context.Context,
	userID string,
	p EditParams,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	displayName := user.DisplayName
	bio := user.Bio
	if p.DisplayName != nil {
		displayName = strings.TrimSpace(*p.DisplayName)
	}
	if p.Bio != nil {
		bio = strings.TrimSpace(*p.Bio)
	}

	fields := FieldErrors{}
	if displayName == "" {
		fields["display_name"] = "must not be empty"
	}
	if len([]rune(displayName)) > maxDisplayNameRune {
		fields["display_name"] = fmt.Sprintf("must be at most %d characters", maxDisplayNameRune)
	}
	if len([]rune(bio)) > maxBioRune {
		fields["bio"] = fmt.Sprintf("must be at most %d characters", maxBioRune)
	}
	if len(fields) > 0 {
		return domain.User{}, fields
	}

	if err := s.Store.Users().UpdateProfile(ctx, userID, displayName, bio); err != nil {
		log.Error("failed to update profile", "user_id", userID, "err", err)
		return domain.User{}, err
	}

	user.DisplayName = displayName
	user.Bio = bio

	log.Debug("profile updated", "user_id", userID)
	return user, nil
}
