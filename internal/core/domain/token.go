package domain

import "errors"

var (
	// ErrInvalidToken covers bad signatures, malformed payloads and expiry.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingSecret is a fatal configuration error raised at construction
	// time, never per-request.
	ErrMissingSecret = errors.New("missing signing secret")
)

// TokenClaims is the identity carried by a verified access token.
// Refresh tokens carry only the user id.
type TokenClaims struct {
	UserID string
	Role   string
}
