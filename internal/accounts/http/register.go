package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harbourlight/accountd/internal/accounts/service"
	"github.com/harbourlight/accountd/pkg/accountsdk"
	"github.com/harbourlight/accountd/pkg/slogx"
)

type RegisterHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		Register Account Endpoint
//	@Description	Create a new user account with a unique handle and email address
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.RegisterRequest	true	"handle, email, password, optional display_name and bio"
//	@Success		201		"Account created"
//	@Failure		400		{object}	accountsdk.APIError			"validation_failed with per-field reasons"
//	@Failure		500		{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req accountsdk.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		accountsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.UserService.Register(ctx, service.RegisterParams{
		Handle:      req.Handle,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
	})
	if err != nil {
		var fields service.FieldErrors
		if errors.As(err, &fields) {
			accountsdk.NewValidationError(fields).WriteError(w)
			return
		}
		log.Error("failed to register user", "err", err)
		accountsdk.ErrServerError.WriteError(w)
		return
	}

	log.Info("account registered", "handle", user.Handle)
	w.WriteHeader(http.StatusCreated)
}
