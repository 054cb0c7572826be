package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mindhaven/wellness-api/internal/core/domain"
	"github.com/mindhaven/wellness-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubCheckInRepo struct {
	byKey map[string]*domain.DailyCheckIn // keyed user|date
}

func newStubCheckInRepo() *stubCheckInRepo {
	return &stubCheckInRepo{byKey: make(map[string]*domain.DailyCheckIn)}
}

func checkInKey(userID, date string) string { return userID + "|" + date }

func (r *stubCheckInRepo) Upsert(_ context.Context, entry *domain.DailyCheckIn) (*domain.DailyCheckIn, error) {
	key := checkInKey(entry.UserID, entry.Date)
	clone := *entry
	if existing, ok := r.byKey[key]; ok {
		clone.ID = existing.ID
		clone.CreatedAt = existing.CreatedAt
	} else {
		clone.ID = "ci-" + key
	}
	r.byKey[key] = &clone
	out := clone
	return &out, nil
}

func (r *stubCheckInRepo) FindByDate(_ context.Context, userID, date string) (*domain.DailyCheckIn, error) {
	entry, ok := r.byKey[checkInKey(userID, date)]
	if !ok {
		return nil, domain.ErrCheckInNotFound
	}
	clone := *entry
	return &clone, nil
}

func (r *stubCheckInRepo) FindRange(_ context.Context, userID, from, to string) ([]domain.DailyCheckIn, error) {
	var out []domain.DailyCheckIn
	for _, e := range r.byKey {
		if e.UserID == userID && e.Date >= from && e.Date <= to {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *stubCheckInRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byKey)), nil
}

func (r *stubCheckInRepo) AverageMood(_ context.Context) (float64, error) {
	if len(r.byKey) == 0 {
		return 0, nil
	}
	var sum int
	for _, e := range r.byKey {
		sum += e.Mood
	}
	return float64(sum) / float64(len(r.byKey)), nil
}

type stubOnboardingRepo struct {
	byUser map[string]*domain.Onboarding
}

func newStubOnboardingRepo() *stubOnboardingRepo {
	return &stubOnboardingRepo{byUser: make(map[string]*domain.Onboarding)}
}

func (r *stubOnboardingRepo) Upsert(_ context.Context, o *domain.Onboarding) (*domain.Onboarding, error) {
	clone := *o
	if existing, ok := r.byUser[o.UserID]; ok {
		clone.CreatedAt = existing.CreatedAt
	}
	r.byUser[o.UserID] = &clone
	out := clone
	return &out, nil
}

func (r *stubOnboardingRepo) Find(_ context.Context, userID string) (*domain.Onboarding, error) {
	o, ok := r.byUser[userID]
	if !ok {
		return nil, domain.ErrOnboardingNotFound
	}
	clone := *o
	return &clone, nil
}

func newWellnessFixture() (*stubCheckInRepo, *stubOnboardingRepo, *WellnessService) {
	checkins := newStubCheckInRepo()
	onboarding := newStubOnboardingRepo()
	svc := NewWellnessService(checkins, onboarding, zerolog.Nop())
	return checkins, onboarding, svc
}

// ---------------------------------------------------------------------------
// Onboarding
// ---------------------------------------------------------------------------

func TestWellnessService_OnboardingStatus_MissingReadsAsFalse(t *testing.T) {
	_, _, svc := newWellnessFixture()

	onboarded, err := svc.OnboardingStatus(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if onboarded {
		t.Error("user without a document must read as not onboarded")
	}
}

func TestWellnessService_GetOnboarding_MissingReturnsDefaults(t *testing.T) {
	_, _, svc := newWellnessFixture()

	o, err := svc.GetOnboarding(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if o.IsOnboarded {
		t.Error("defaults must not claim onboarded")
	}
	if o.EmotionalSensitivity != domain.SensitivityBalanced {
		t.Errorf("sensitivity default: want %q, got %q", domain.SensitivityBalanced, o.EmotionalSensitivity)
	}
	if o.ReminderTone != domain.ToneGentle {
		t.Errorf("tone default: want %q, got %q", domain.ToneGentle, o.ReminderTone)
	}
	if o.ThemePreference != domain.ThemePrefLight {
		t.Errorf("theme default: want %q, got %q", domain.ThemePrefLight, o.ThemePreference)
	}
	if o.Goals == nil {
		t.Error("goals must be an empty slice, not nil")
	}
}

func TestWellnessService_SaveOnboarding_MarksOnboarded(t *testing.T) {
	_, _, svc := newWellnessFixture()

	o, err := svc.SaveOnboarding(context.Background(), "user-1", ports.OnboardingInput{
		Goals:                []string{"sleep better"},
		EmotionalSensitivity: domain.SensitivityVibrant,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !o.IsOnboarded {
		t.Error("saving must mark the user onboarded")
	}
	if o.ReminderTone != domain.ToneGentle {
		t.Errorf("unset tone must default, got %q", o.ReminderTone)
	}

	onboarded, _ := svc.OnboardingStatus(context.Background(), "user-1")
	if !onboarded {
		t.Error("status must flip to true after save")
	}
}

// ---------------------------------------------------------------------------
// Check-ins
// ---------------------------------------------------------------------------

func TestWellnessService_SaveCheckIn_Bounds(t *testing.T) {
	_, _, svc := newWellnessFixture()

	cases := []ports.CheckInInput{
		{Mood: 0, Energy: 5},
		{Mood: 6, Energy: 5},
		{Mood: 3, Energy: 0},
		{Mood: 3, Energy: 11},
	}
	for _, input := range cases {
		if _, err := svc.SaveCheckIn(context.Background(), "user-1", input); err == nil {
			t.Errorf("input %+v: expected validation error", input)
		}
	}
}

func TestWellnessService_SaveCheckIn_NoteTooLong(t *testing.T) {
	_, _, svc := newWellnessFixture()

	long := make([]byte, domain.NoteMaxLen+1)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := svc.SaveCheckIn(context.Background(), "user-1", ports.CheckInInput{Mood: 3, Energy: 5, Note: string(long)}); err == nil {
		t.Error("expected note length error")
	}
}

func TestWellnessService_SaveCheckIn_DerivesTheme(t *testing.T) {
	cases := []struct {
		mood int
		want domain.MoodTheme
	}{
		{1, domain.ThemeLow},
		{2, domain.ThemeLow},
		{3, domain.ThemeNeutral},
		{4, domain.ThemePositive},
		{5, domain.ThemePositive},
	}
	for _, tc := range cases {
		_, _, svc := newWellnessFixture()
		got, err := svc.SaveCheckIn(context.Background(), "user-1", ports.CheckInInput{Mood: tc.mood, Energy: 5})
		if err != nil {
			t.Fatal(err)
		}
		if got.Theme != tc.want {
			t.Errorf("mood %d: want theme %q, got %q", tc.mood, tc.want, got.Theme)
		}
	}
}

func TestWellnessService_SaveCheckIn_SameDayReplaces(t *testing.T) {
	checkins, _, svc := newWellnessFixture()

	first, err := svc.SaveCheckIn(context.Background(), "user-1", ports.CheckInInput{Mood: 2, Energy: 3})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.SaveCheckIn(context.Background(), "user-1", ports.CheckInInput{Mood: 5, Energy: 9})
	if err != nil {
		t.Fatal(err)
	}

	if len(checkins.byKey) != 1 {
		t.Fatalf("expected 1 stored check-in, got %d", len(checkins.byKey))
	}
	if second.ID != first.ID {
		t.Errorf("same-day resubmit must keep the document id, got %q vs %q", second.ID, first.ID)
	}
	if second.Mood != 5 || second.Theme != domain.ThemePositive {
		t.Errorf("resubmit must replace values and recompute theme, got %+v", second)
	}

	today, err := svc.TodayCheckIn(context.Background(), "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if today.Mood != 5 {
		t.Errorf("today's entry: want mood 5, got %d", today.Mood)
	}
}

func TestWellnessService_TodayCheckIn_Missing(t *testing.T) {
	_, _, svc := newWellnessFixture()

	if _, err := svc.TodayCheckIn(context.Background(), "user-1"); err != domain.ErrCheckInNotFound {
		t.Errorf("expected ErrCheckInNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Mood flow
// ---------------------------------------------------------------------------

func seedCheckIn(repo *stubCheckInRepo, userID string, daysAgo, mood int, ref time.Time) {
	date := domain.CheckInDate(ref.AddDate(0, 0, -daysAgo))
	repo.byKey[checkInKey(userID, date)] = &domain.DailyCheckIn{
		UserID: userID,
		Mood:   mood,
		Energy: 5,
		Date:   date,
		Theme:  domain.ThemeForMood(mood),
	}
}

func TestWellnessService_MoodFlow_WeekWindow(t *testing.T) {
	checkins, _, svc := newWellnessFixture()
	ref := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return ref }

	seedCheckIn(checkins, "user-1", 0, 4, ref)
	seedCheckIn(checkins, "user-1", 6, 2, ref)
	seedCheckIn(checkins, "user-1", 7, 5, ref) // just outside the week
	seedCheckIn(checkins, "user-2", 1, 3, ref) // another user

	flow, err := svc.MoodFlow(context.Background(), "user-1", "week")
	if err != nil {
		t.Fatal(err)
	}

	if flow.Period != "week" {
		t.Errorf("period: want week, got %q", flow.Period)
	}
	if flow.From != "2026-08-24" || flow.To != "2026-08-30" {
		t.Errorf("window: got %s..%s", flow.From, flow.To)
	}
	if len(flow.Items) != 2 {
		t.Fatalf("expected 2 items in the week, got %d", len(flow.Items))
	}
	if flow.Items[0].Date > flow.Items[1].Date {
		t.Error("items must be ordered oldest first")
	}
}

func TestWellnessService_MoodFlow_UnknownPeriodFallsBackToWeek(t *testing.T) {
	_, _, svc := newWellnessFixture()

	flow, err := svc.MoodFlow(context.Background(), "user-1", "decade")
	if err != nil {
		t.Fatal(err)
	}
	if flow.Period != "week" {
		t.Errorf("unknown period must fall back to week, got %q", flow.Period)
	}
	if flow.Items == nil {
		t.Error("empty window must serialize as [], not null")
	}
}

func TestWellnessService_MoodFlow_MonthAndYearWindows(t *testing.T) {
	checkins, _, svc := newWellnessFixture()
	ref := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return ref }

	seedCheckIn(checkins, "user-1", 20, 3, ref)  // inside month
	seedCheckIn(checkins, "user-1", 200, 4, ref) // inside year only

	month, err := svc.MoodFlow(context.Background(), "user-1", "month")
	if err != nil {
		t.Fatal(err)
	}
	if len(month.Items) != 1 {
		t.Errorf("month window: expected 1 item, got %d", len(month.Items))
	}

	year, err := svc.MoodFlow(context.Background(), "user-1", "year")
	if err != nil {
		t.Fatal(err)
	}
	if len(year.Items) != 2 {
		t.Errorf("year window: expected 2 items, got %d", len(year.Items))
	}
}
