package domain

import (
	"errors"
	"time"
)

// MoodTheme is derived from the mood score and drives the client UI palette.
type MoodTheme string

const (
	ThemeLow      MoodTheme = "low"
	ThemeNeutral  MoodTheme = "neutral"
	ThemePositive MoodTheme = "positive"
)

var ErrCheckInNotFound = errors.New("check-in not found")

const (
	MoodMin   = 1
	MoodMax   = 5
	EnergyMin = 1
	EnergyMax = 10

	// NoteMaxLen bounds the optional free-text note on a check-in.
	NoteMaxLen = 300
)

// ThemeForMood maps a 1-5 mood score onto a UI theme.
func ThemeForMood(mood int) MoodTheme {
	switch {
	case mood <= 2:
		return ThemeLow
	case mood == 3:
		return ThemeNeutral
	default:
		return ThemePositive
	}
}

// CheckInDate formats an instant as the YYYY-MM-DD key used to enforce one
// check-in per user per UTC day.
func CheckInDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DailyCheckIn records a single day's mood/energy submission.
type DailyCheckIn struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Mood      int       `json:"mood" bson:"mood"`
	Energy    int       `json:"energy" bson:"energy"`
	Note      string    `json:"note,omitempty" bson:"note,omitempty"`
	Date      string    `json:"date" bson:"date"`
	Theme     MoodTheme `json:"theme" bson:"theme"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// MoodFlow is a window of check-ins for the analytics view.
type MoodFlow struct {
	Period string         `json:"period"`
	From   string         `json:"from"`
	To     string         `json:"to"`
	Items  []DailyCheckIn `json:"items"`
}
