package auth

import "errors"

// LoginDTO leaves password optional so that its absence maps to 400
// rather than a binding error.
type LoginDTO struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

const (
	outcomeSuccess     = "success"
	outcomeInvalid     = "invalid_credentials"
	outcomeMissing     = "missing_password"
	outcomeUnavailable = "not_configured"
)

const (
	msgConfigError        = "Server configuration error"
	msgPasswordRequired   = "Password is required"
	msgInvalidCredentials = "Invalid credentials"
	msgTokenFailed        = "Failed to issue token"
)

var (
	errNotConfigured      = errors.New("admin password is not configured")
	errPasswordRequired   = errors.New("password is required")
	errInvalidCredentials = errors.New("invalid credentials")
)
