package domain

import (
	"errors"
	"time"
)

var ErrOnboardingNotFound = errors.New("onboarding not found")

const (
	SensitivitySoft     = "soft"
	SensitivityBalanced = "balanced"
	SensitivityVibrant  = "vibrant"
)

const (
	ToneGentle       = "gentle"
	ToneNeutral      = "neutral"
	ToneMotivational = "motivational"
)

const (
	ThemePrefLight = "light"
	ThemePrefDark  = "dark"
)

// Onboarding holds a user's preference answers from the guided setup flow.
// One document per user; saving marks the user as onboarded.
type Onboarding struct {
	UserID               string    `json:"user_id" bson:"user_id"`
	IsOnboarded          bool      `json:"is_onboarded" bson:"is_onboarded"`
	Goals                []string  `json:"goals" bson:"goals"`
	EmotionalSensitivity string    `json:"emotional_sensitivity" bson:"emotional_sensitivity"`
	ReminderTone         string    `json:"reminder_tone" bson:"reminder_tone"`
	ThemePreference      string    `json:"theme_preference" bson:"theme_preference"`
	CreatedAt            time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" bson:"updated_at"`
}

// ApplyDefaults fills unset enum fields with their documented defaults.
func (o *Onboarding) ApplyDefaults() {
	if o.EmotionalSensitivity == "" {
		o.EmotionalSensitivity = SensitivityBalanced
	}
	if o.ReminderTone == "" {
		o.ReminderTone = ToneGentle
	}
	if o.ThemePreference == "" {
		o.ThemePreference = ThemePrefLight
	}
	if o.Goals == nil {
		o.Goals = []string{}
	}
}
