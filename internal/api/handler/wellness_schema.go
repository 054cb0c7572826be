package handler

import "github.com/mindhaven/wellness-api/internal/core/domain"

type onboardingRequest struct {
	Goals                []string `json:"goals"`
	EmotionalSensitivity string   `json:"emotional_sensitivity" validate:"omitempty,oneof=soft balanced vibrant"`
	ReminderTone         string   `json:"reminder_tone"         validate:"omitempty,oneof=gentle neutral motivational"`
	ThemePreference      string   `json:"theme_preference"      validate:"omitempty,oneof=light dark"`
}

type onboardingStatusResponse struct {
	IsOnboarded bool `json:"is_onboarded"`
}

type onboardingResponse struct {
	Onboarding domain.Onboarding `json:"onboarding"`
}

type checkInRequest struct {
	Mood   int    `json:"mood"   validate:"required,gte=1,lte=5"`
	Energy int    `json:"energy" validate:"required,gte=1,lte=10"`
	Note   string `json:"note"   validate:"omitempty,max=300"`
}

type checkInResponse struct {
	CheckIn domain.DailyCheckIn `json:"check_in"`
}

// todayCheckInResponse wraps the optional current-day check-in; CheckIn is
// null when the user has not checked in yet today.
type todayCheckInResponse struct {
	CheckIn *domain.DailyCheckIn `json:"check_in"`
}
