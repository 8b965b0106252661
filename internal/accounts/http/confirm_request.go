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

type ConfirmRequestHandler struct {
	ConfirmationService *service.ConfirmationService

	// PublicBaseURL overrides the link base derived from the request.
	PublicBaseURL string
}

// ServeHTTP godoc
//
//	@Summary		Request Confirmation Endpoint
//	@Description	Email a single-use confirmation link to the given address. The
//	@Description	response is identical whether or not the address belongs to an
//	@Description	account, so it cannot be used to probe for registered emails.
//	@Tags			Confirmations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.ConfirmRequest			true	"email"
//	@Success		200		{object}	accountsdk.ConfirmStatusResponse	"status"
//	@Failure		400		{object}	accountsdk.APIError					"validation_failed"
//	@Failure		500		{object}	accountsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/users/confirm [post].
func (h *ConfirmRequestHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req accountsdk.ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		accountsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	if err := h.ConfirmationService.Request(ctx, req.Email, h.baseURL(r)); err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			accountsdk.NewValidationError(map[string]string{
				"email": "must be a valid email address",
			}).WriteError(w)
			return
		}
		log.Error("failed to issue confirmation", "err", err)
		accountsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, accountsdk.ConfirmStatusResponse{Status: "ok"})
}

// baseURL picks the origin for the emailed link: the configured public base
// URL if set, otherwise the scheme and host the request arrived on.
func (h *ConfirmRequestHandler) baseURL(r *http.Request) string {
	if h.PublicBaseURL != "" {
		return h.PublicBaseURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
