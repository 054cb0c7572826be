package ports

import (
	"context"

	"github.com/mindhaven/wellness-api/internal/core/domain"
)

// OnboardingRepository persists one onboarding document per user.
type OnboardingRepository interface {
	Upsert(ctx context.Context, o *domain.Onboarding) (*domain.Onboarding, error)
	Find(ctx context.Context, userID string) (*domain.Onboarding, error)
}
