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

type ChangePasswordHandler struct {
	ConfirmationService *service.ConfirmationService
}

// ServeHTTP godoc
//
//	@Summary		Change Password Endpoint
//	@Description	Redeem a confirmation token to set a new password for the caller.
//	@Description	The token is consumed on success. Failures return a deliberately
//	@Description	generic 400 so the endpoint leaks nothing about token state.
//	@Tags			Confirmations
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			hash	path		string								true	"Confirmation token from the emailed link"
//	@Param			request	body		accountsdk.ChangePasswordRequest	true	"password"
//	@Success		200		{object}	accountsdk.ConfirmStatusResponse	"status"
//	@Failure		400		{object}	accountsdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	accountsdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		500		{object}	accountsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/users/confirm/{hash}/changepass [post].
func (h *ChangePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		accountsdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req accountsdk.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		accountsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	token := r.PathValue("hash")
	if err := h.ConfirmationService.ChangePassword(ctx, token, userID, req.Password); err != nil {
		// Bad token and weak password both collapse into the same 400.
		if errors.Is(err, service.ErrConfirmationNotFound) || errors.Is(err, service.ErrWeakPassword) {
			accountsdk.ErrInvalidRequest.WriteError(w)
			return
		}
		log.Error("failed to change password", "user_id", userID, "err", err)
		accountsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, accountsdk.ConfirmStatusResponse{Status: "ok"})
}
