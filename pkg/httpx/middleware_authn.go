package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/harbourlight/accountd/pkg/slogx"
)

// Identity is the resolved owner of a bearer token.
type Identity struct {
	UserID string
	Handle string
}

// TokenVerifier resolves an opaque bearer token to the identity it was
// issued to. Implementations look the token up in persistent storage.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (Identity, error)
}

func AuthnMiddleware(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			ident, err := v.VerifyToken(ctx, raw)
			if err != nil {
				writeBearerError(w, "token verification failed")
				log.Warn("bearer token verify failed", "err", err)
				return
			}

			// Inject into context for downstream handlers.
			ctx = contextWithAuth(ctx, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithAuth(ctx context.Context, ident Identity) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, ident.UserID)
	ctx = context.WithValue(ctx, CtxKeyHandle, ident.Handle)
	return ctx
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "invalid_token",
		"error_description": desc,
	})
}
