package accountsdk

import "time"

// ============================================================================
// Request Types
// ============================================================================

// RegisterRequest is the payload for POST /v1/users.
type RegisterRequest struct {
	// Handle is the unique public username (3-32 word characters).
	Handle string `json:"handle"`

	// Email must be unique across accounts.
	Email string `json:"email"`

	// Password in plaintext; hashed server-side, never stored or echoed.
	Password string `json:"password"`

	// DisplayName defaults to the handle when omitted.
	DisplayName string `json:"display_name,omitempty"`

	// Bio is free-form profile text.
	Bio string `json:"bio,omitempty"`
}

// LoginRequest is the credential pair for POST /v1/users/login.
type LoginRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

// ConfirmRequest submits an email address to receive a confirmation link.
type ConfirmRequest struct {
	Email string `json:"email"`
}

// EditProfileRequest updates the caller's own profile. Absent fields keep
// their current value, so the same type serves PUT and PATCH.
type EditProfileRequest struct {
	DisplayName *string `json:"display_name,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

// ChangePasswordRequest carries the new password for the changepass endpoint.
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// ============================================================================
// Response Types
// ============================================================================

// UserRecord is the public view of an account returned by the listing and
// profile endpoints. Credentials and email never appear here.
type UserRecord struct {
	Handle      string     `json:"handle"`
	DisplayName string     `json:"display_name"`
	Bio         string     `json:"bio,omitempty"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// LoginResponse is returned on successful login. The "log" key carries the
// last-login timestamp as it stood before this login (nil on first login).
type LoginResponse struct {
	Token     string     `json:"token"`
	LastLogin *time.Time `json:"log"`
}

// ConfirmStatusResponse acknowledges a confirmation operation.
type ConfirmStatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	// Error is a stable machine-readable code ("not_found", "server_error", ...)
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned with status 400 when request
// validation fails; Fields maps field names to failure reasons.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// HealthResponse is returned by the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}
