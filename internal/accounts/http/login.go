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

type LoginHandler struct {
	AuthService *service.AuthService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Exchange a handle/password pair for the account's access token.
//	@Description	The token is persistent: repeat logins return the same value. The
//	@Description	"log" field carries the last-login timestamp prior to this login.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.LoginRequest		true	"handle, password"
//	@Success		200		{object}	accountsdk.LoginResponse	"token, log"
//	@Failure		400		{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	accountsdk.ErrorResponse	"invalid credentials"
//	@Failure		500		{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req accountsdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		accountsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	if req.Handle == "" || req.Password == "" {
		accountsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	result, err := h.AuthService.Login(ctx, req.Handle, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			accountsdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("failed to log in user", "handle", req.Handle, "err", err)
		accountsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, accountsdk.LoginResponse{
		Token:     result.Token,
		LastLogin: result.LastLogin,
	})
}
