package ports

import (
	"context"

	"github.com/mindhaven/wellness-api/internal/core/domain"
)

// RegisterInput is the registration form captured before OTP verification.
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Age      int
	WeightKg float64
}

// LoginResult bundles everything a successful login produces. The refresh
// token is delivered as an HttpOnly cookie by the handler, never in the body.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

// AuthService orchestrates register → verify-otp → login → refresh → logout.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) error
	VerifyRegisterOtp(ctx context.Context, email, code string) (*domain.User, error)
	ResendRegisterOtp(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	VerifyForgotOtp(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
