package domain

import (
	"errors"
	"time"
)

// OtpPurpose discriminates what a one-time code is allowed to complete.
type OtpPurpose string

const (
	PurposeRegister       OtpPurpose = "REGISTER"
	PurposeForgotPassword OtpPurpose = "FORGOT_PASSWORD"
)

var (
	ErrOtpNotFound = errors.New("otp not found")
	ErrOtpExpired  = errors.New("otp expired")
	ErrOtpInvalid  = errors.New("otp invalid")
	ErrRateLimited = errors.New("too many requests")
)

// Valid reports whether p is a known purpose.
func (p OtpPurpose) Valid() bool {
	return p == PurposeRegister || p == PurposeForgotPassword
}

// RegisterPayload is the pending registration carried by a REGISTER code.
// The password is hashed before it ever reaches the ledger; the plaintext is
// not stored anywhere. FORGOT_PASSWORD codes carry an empty payload.
type RegisterPayload struct {
	FullName     string  `bson:"full_name,omitempty"`
	Age          int     `bson:"age,omitempty"`
	WeightKg     float64 `bson:"weight_kg,omitempty"`
	PasswordHash string  `bson:"password_hash,omitempty"`
}

// OtpRecord is an ephemeral verification artifact. At most one live record
// exists per (email, purpose); issuing a new code supersedes the old one.
// The store expires records at ExpiresAt, and the service re-checks expiry
// to cover the window before the TTL reaper runs.
type OtpRecord struct {
	Email     string          `bson:"email"`
	Purpose   OtpPurpose      `bson:"purpose"`
	CodeHash  string          `bson:"code_hash"`
	Payload   RegisterPayload `bson:"payload,omitempty"`
	ExpiresAt time.Time       `bson:"expires_at"`
}

// Expired reports whether the record is past its expiry at the given instant.
func (r *OtpRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
