package http

import (
	"errors"
	"net/http"

	"github.com/harbourlight/accountd/internal/accounts/service"
	"github.com/harbourlight/accountd/pkg/accountsdk"
	"github.com/harbourlight/accountd/pkg/httpx"
	"github.com/harbourlight/accountd/pkg/slogx"
)

type ConfirmCheckHandler struct {
	ConfirmationService *service.ConfirmationService
}

// ServeHTTP godoc
//
//	@Summary		Check Confirmation Endpoint
//	@Description	Verify that a confirmation token is valid for the caller and still
//	@Description	redeemable. Does not consume the token.
//	@Tags			Confirmations
//	@Security		BearerAuth
//	@Produce		json
//	@Param			hash	path		string								true	"Confirmation token from the emailed link"
//	@Success		200		{object}	accountsdk.ConfirmStatusResponse	"status"
//	@Failure		401		{object}	accountsdk.ErrorResponse			"Invalid or missing access token"
//	@Failure		404		{object}	accountsdk.ErrorResponse			"Token unknown, expired, used, or not the caller's"
//	@Router			/v1/users/confirm/{hash} [get].
func (h *ConfirmCheckHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	if userID == "" {
		accountsdk.ErrInvalidToken.WriteError(w)
		return
	}

	token := r.PathValue("hash")
	if err := h.ConfirmationService.Check(ctx, token, userID); err != nil {
		if errors.Is(err, service.ErrConfirmationNotFound) {
			accountsdk.ErrNotFound.WriteError(w)
			return
		}
		log.Error("failed to check confirmation", "user_id", userID, "err", err)
		accountsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, accountsdk.ConfirmStatusResponse{Status: "valid"})
}
