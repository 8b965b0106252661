package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harbourlight/accountd/internal/accounts/service"
	"github.com/harbourlight/accountd/pkg/accountsdk"
	"github.com/harbourlight/accountd/pkg/httpx"
	"github.com/harbourlight/accountd/pkg/slogx"
)

type MeHandler struct {
	UserService *service.UserService
}

// HandleGet godoc
//
//	@Summary		Own Profile Endpoint
//	@Description	Return the public record of the authenticated account
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	accountsdk.UserRecord		"Public account record"
//	@Failure		401	{object}	accountsdk.ErrorResponse	"Invalid or missing access token"
//	@Failure		500	{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/me [get].
func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		accountsdk.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// The token's account no longer exists.
			accountsdk.ErrInvalidToken.WriteError(w)
			return
		}
		log.Error("failed to load own profile", "user_id", userID, "err", err)
		accountsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, user.Public())
}

// HandleUpdate godoc
//
//	@Summary		Edit Profile Endpoint
//	@Description	Update the caller's display name and bio. Absent fields keep their
//	@Description	current value. Handle and email cannot be changed here.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.EditProfileRequest	true	"display_name, bio"
//	@Success		200		{object}	accountsdk.UserRecord			"Updated public record"
//	@Failure		400		{object}	accountsdk.APIError				"validation_failed with per-field reasons"
//	@Failure		401		{object}	accountsdk.ErrorResponse		"Invalid or missing access token"
//	@Failure		500		{object}	accountsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/users/me [patch].
func (h *MeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		accountsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req accountsdk.EditProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		accountsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.UserService.UpdateProfile(ctx, userID, service.EditParams{
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		var fields service.FieldErrors
		switch {
		case errors.As(err, &fields):
			accountsdk.NewValidationError(fields).WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			accountsdk.ErrInvalidToken.WriteError(w)
		default:
			log.Error("failed to update profile", "user_id", userID, "err", err)
			accountsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, user.Public())
}
