package domain

import "time"

type User struct {
	ID           string
	Handle       string // unique, immutable public identifier
	Email        string // unique
	PasswordHash string // argon2 encoded
	DisplayName  string
	Bio          string
	LastLoginAt  *time.Time // nil until first login
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the restricted view returned by listing and profile
// endpoints. The password hash and email never leave through it.
type PublicUser struct {
	Handle      string     `json:"handle"`
	DisplayName string     `json:"display_name"`
	Bio         string     `json:"bio,omitempty"`
	LastLoginAt *time.Time `json:"last_login,omitempty"`
}

// Public projects the user onto its public view.
func (u User) Public() PublicUser {
	return PublicUser{
		Handle:      u.Handle,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		LastLoginAt: u.LastLoginAt,
	}
}
