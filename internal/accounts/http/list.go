package http

import (
	"net/http"

	"github.com/harbourlight/accountd/internal/accounts/domain"
	"github.com/harbourlight/accountd/internal/accounts/service"
	"github.com/harbourlight/accountd/pkg/accountsdk"
	"github.com/harbourlight/accountd/pkg/httpx"
	"github.com/harbourlight/accountd/pkg/slogx"
)

type ListHandler struct {
	UserService *service.UserService
}

// ServeHTTP godoc
//
//	@Summary		List Accounts Endpoint
//	@Description	Return the public record of every account
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}		accountsdk.UserRecord		"Public account records"
//	@Failure		500	{object}	accountsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/users [get].
func (h *ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		log.Error("failed to list users", "err", err)
		accountsdk.ErrServerError.WriteError(w)
		return
	}

	// Always encode as a JSON array, even when empty.
	records := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		records = append(records, u.Public())
	}

	httpx.WriteJSON(w, http.StatusOK, records)
}
