package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	AccountActive = "active"
	AccountBanned = "banned"
)

const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailExists     = errors.New("email already exists")
	ErrInvalidPassword = errors.New("invalid password")
	ErrAccountBanned   = errors.New("account is banned")
	ErrInvalidPin      = errors.New("invalid pin")
	ErrForbidden       = errors.New("access forbidden")
)

// NotificationTypes toggles the individual reminder categories.
type NotificationTypes struct {
	MoodCheck       bool `json:"mood_check" bson:"mood_check"`
	JournalReminder bool `json:"journal_reminder" bson:"journal_reminder"`
	DailyTip        bool `json:"daily_tip" bson:"daily_tip"`
}

// NotificationSettings controls which reminders a user receives and when.
type NotificationSettings struct {
	Enabled    bool              `json:"enabled" bson:"enabled"`
	DailyTimes []string          `json:"daily_times" bson:"daily_times"`
	Types      NotificationTypes `json:"types" bson:"types"`
}

// DefaultNotificationSettings returns the settings applied to new accounts.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Enabled:    true,
		DailyTimes: []string{},
		Types: NotificationTypes{
			MoodCheck:       true,
			JournalReminder: true,
			DailyTip:        true,
		},
	}
}

// User models an account in the system. PasswordHash and AppLockPinHash are
// never serialized to JSON; handlers only ever see the sanitized view.
type User struct {
	ID                   string               `json:"id"`
	FullName             string               `json:"full_name"`
	Email                string               `json:"email"`
	PasswordHash         string               `json:"-"`
	Role                 string               `json:"role"`
	Age                  int                  `json:"age,omitempty"`
	WeightKg             float64              `json:"weight_kg,omitempty"`
	HeightCm             float64              `json:"height_cm,omitempty"`
	DateOfBirth          *time.Time           `json:"date_of_birth,omitempty"`
	HealthGoals          []string             `json:"health_goals,omitempty"`
	AvatarURL            string               `json:"avatar_url"`
	AccountStatus        string               `json:"account_status"`
	AuthProvider         string               `json:"auth_provider"`
	NotificationSettings NotificationSettings `json:"notification_settings"`
	AppLockEnabled       bool                 `json:"app_lock_enabled"`
	AppLockPinHash       string               `json:"-"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// ProfileUpdate carries the profile fields a user may change themselves.
// Nil pointers mean "leave unchanged".
type ProfileUpdate struct {
	FullName    *string
	Age         *int
	WeightKg    *float64
	HeightCm    *float64
	DateOfBirth *time.Time
	HealthGoals []string
}
