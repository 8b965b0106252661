package domain

import "time"

// AccessToken is the opaque bearer credential for a user. Exactly one exists
// per user, created lazily on first login and returned verbatim on every
// subsequent login. The value is stored as-is (not fingerprinted) because the
// login contract requires handing the identical token back each time.
type AccessToken struct {
	UserID    string
	Token     string
	CreatedAt time.Time
}
