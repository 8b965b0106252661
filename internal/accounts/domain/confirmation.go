package domain

import "time"

// Confirmation is a single-use email confirmation token. Only the SHA-256
// fingerprint of the opaque token is stored; the raw value exists solely in
// the emailed link. A confirmation is redeemable only by the user it was
// issued to, until it expires or is consumed.
type Confirmation struct {
	ID        string
	TokenHash string // base64url SHA-256 fingerprint
	UserID    string
	ExpiresAt time.Time
	UsedAt    *time.Time // set when consumed by a password change
	CreatedAt time.Time
}

// Redeemable reports whether the confirmation is still valid at t.
func (c Confirmation) Redeemable(t time.Time) bool {
	return c.UsedAt == nil && t.Before(c.ExpiresAt)
}
