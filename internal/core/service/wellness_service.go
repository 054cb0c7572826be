package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindhaven/wellness-api/internal/core/domain"
	"github.com/mindhaven/wellness-api/internal/core/ports"
)

// WellnessService covers onboarding preferences, daily check-ins and the
// mood-flow analytics window.
type WellnessService struct {
	checkins   ports.CheckInRepository
	onboarding ports.OnboardingRepository
	log        zerolog.Logger
	now        func() time.Time
}

func NewWellnessService(checkins ports.CheckInRepository, onboarding ports.OnboardingRepository, log zerolog.Logger) *WellnessService {
	return &WellnessService{
		checkins:   checkins,
		onboarding: onboarding,
		log:        log,
		now:        time.Now,
	}
}

// OnboardingStatus reports whether the guided setup has been completed.
// A missing document reads as not onboarded, not as an error.
func (s *WellnessService) OnboardingStatus(ctx context.Context, userID string) (bool, error) {
	o, err := s.onboarding.Find(ctx, userID)
	if err != nil {
		if err == domain.ErrOnboardingNotFound {
			return false, nil
		}
		return false, err
	}
	return o.IsOnboarded, nil
}

// GetOnboarding returns the stored answers, or an empty defaulted document
// when the user has not onboarded yet.
func (s *WellnessService) GetOnboarding(ctx context.Context, userID string) (*domain.Onboarding, error) {
	o, err := s.onboarding.Find(ctx, userID)
	if err != nil {
		if err == domain.ErrOnboardingNotFound {
			empty := &domain.Onboarding{UserID: userID}
			empty.ApplyDefaults()
			return empty, nil
		}
		return nil, err
	}
	return o, nil
}

// SaveOnboarding upserts the answers and marks the user as onboarded.
func (s *WellnessService) SaveOnboarding(ctx context.Context, userID string, input ports.OnboardingInput) (*domain.Onboarding, error) {
	now := s.now().UTC()
	o := &domain.Onboarding{
		UserID:               userID,
		IsOnboarded:          true,
		Goals:                input.Goals,
		EmotionalSensitivity: input.EmotionalSensitivity,
		ReminderTone:         input.ReminderTone,
		ThemePreference:      input.ThemePreference,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	o.ApplyDefaults()

	saved, err := s.onboarding.Upsert(ctx, o)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Msg("onboarding saved")
	return saved, nil
}

// TodayCheckIn returns the entry for the current UTC day.
func (s *WellnessService) TodayCheckIn(ctx context.Context, userID string) (*domain.DailyCheckIn, error) {
	return s.checkins.FindByDate(ctx, userID, domain.CheckInDate(s.now()))
}

// SaveCheckIn upserts today's entry; a second submission the same day
// replaces the first and recomputes the derived theme.
func (s *WellnessService) SaveCheckIn(ctx context.Context, userID string, input ports.CheckInInput) (*domain.DailyCheckIn, error) {
	if input.Mood < domain.MoodMin || input.Mood > domain.MoodMax {
		return nil, fmt.Errorf("mood must be between %d and %d", domain.MoodMin, domain.MoodMax)
	}
	if input.Energy < domain.EnergyMin || input.Energy > domain.EnergyMax {
		return nil, fmt.Errorf("energy must be between %d and %d", domain.EnergyMin, domain.EnergyMax)
	}

	note := strings.TrimSpace(input.Note)
	if len(note) > domain.NoteMaxLen {
		return nil, fmt.Errorf("note must be at most %d characters", domain.NoteMaxLen)
	}

	now := s.now().UTC()
	entry := &domain.DailyCheckIn{
		UserID:    userID,
		Mood:      input.Mood,
		Energy:    input.Energy,
		Note:      note,
		Date:      domain.CheckInDate(now),
		Theme:     domain.ThemeForMood(input.Mood),
		CreatedAt: now,
		UpdatedAt: now,
	}

	saved, err := s.checkins.Upsert(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", userID).
		Int("mood", input.Mood).
		Int("energy", input.Energy).
		Msg("check-in saved")
	return saved, nil
}

// MoodFlow returns check-ins over the requested window, oldest first.
// Unknown periods fall back to a week, matching the client default.
func (s *WellnessService) MoodFlow(ctx context.Context, userID, period string) (*domain.MoodFlow, error) {
	today := s.now().UTC()
	start := today

	switch period {
	case "year":
		start = today.AddDate(-1, 0, 0)
	case "month":
		start = today.AddDate(0, -1, 0)
	default:
		period = "week"
		start = today.AddDate(0, 0, -6)
	}

	from := domain.CheckInDate(start)
	to := domain.CheckInDate(today)

	items, err := s.checkins.FindRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.DailyCheckIn{}
	}

	return &domain.MoodFlow{Period: period, From: from, To: to, Items: items}, nil
}
