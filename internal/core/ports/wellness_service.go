package ports

import (
	"context"

	"github.com/mindhaven/wellness-api/internal/core/domain"
)

// CheckInInput is a daily mood/energy submission.
type CheckInInput struct {
	Mood   int
	Energy int
	Note   string
}

// OnboardingInput carries the guided-setup answers.
type OnboardingInput struct {
	Goals                []string
	EmotionalSensitivity string
	ReminderTone         string
	ThemePreference      string
}

// WellnessService covers onboarding, daily check-ins and mood analytics.
type WellnessService interface {
	OnboardingStatus(ctx context.Context, userID string) (bool, error)
	GetOnboarding(ctx context.Context, userID string) (*domain.Onboarding, error)
	SaveOnboarding(ctx context.Context, userID string, input OnboardingInput) (*domain.Onboarding, error)
	TodayCheckIn(ctx context.Context, userID string) (*domain.DailyCheckIn, error)
	SaveCheckIn(ctx context.Context, userID string, input CheckInInput) (*domain.DailyCheckIn, error)
	MoodFlow(ctx context.Context, userID, period string) (*domain.MoodFlow, error)
}
