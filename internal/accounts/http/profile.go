package http

import (
	"errors"
	"net/http"

	"github.com/harbourlight/accountd/internal/accounts/service"
	"github.com/harbourlight/accountd/pkg/accountsdk"
	"github.com/harbourlight/accountd/pkg/httpx"
	"github.com/harbourlight/accountd/pkg/slogx"
)

type ProfileHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Public Profile Endpoint
//	@Description	Return the public record for a single handle
//	@Tags			Users
//	@Produce		json
//	@Param			handle	path		string						true	"Account handle"
//	@Success		200		{object}	accountsdk.UserRecord		"Public account record"
//	@Failure		404		{object}	accountsdk.ErrorResponse	"No account with that handle"
//	@Failure		500		{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/{handle} [get].
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	handle := r.PathValue("handle")
	user, err := h.UserService.GetUserByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			accountsdk.ErrNotFound.WriteError(w)
			return
		}
		log.Error("failed to load profile", "handle", handle, "err", err)
		accountsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, user.Public())
}
