package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyHandle ctxKey = "handle"
)

// UserIDFromContext returns the authenticated user's id, or "" when the
// request did not pass through AuthnMiddleware.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}

// HandleFromContext returns the authenticated user's handle, or "".
func HandleFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyHandle).(string); ok {
		return v
	}
	return ""
}
