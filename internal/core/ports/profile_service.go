package ports

import (
	"context"

	"github.com/mindhaven/wellness-api/internal/core/domain"
)

// ProfileService exposes the self-service account operations.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	SetAppLockPin(ctx context.Context, userID, pin string) (*domain.User, error)
	VerifyAppLockPin(ctx context.Context, userID, pin string) error
	ResetAvatar(ctx context.Context, userID string) (*domain.User, error)
}
