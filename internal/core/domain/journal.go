package domain

import (
	"errors"
	"time"
)

var ErrJournalEntryNotFound = errors.New("journal entry not found")

// JournalEntry is a dated free-form entry. Deletion is soft: the entry is
// flagged and hidden from listings until restored or purged by retention.
type JournalEntry struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	UserID    string     `json:"user_id" bson:"user_id"`
	Date      string     `json:"date" bson:"date"`
	Title     string     `json:"title" bson:"title"`
	Content   string     `json:"content" bson:"content"`
	Mood      string     `json:"mood,omitempty" bson:"mood,omitempty"`
	Emotions  []string   `json:"emotions,omitempty" bson:"emotions,omitempty"`
	IsDeleted bool       `json:"is_deleted" bson:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" bson:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// JournalUpdate carries mutable entry fields; nil means "leave unchanged".
type JournalUpdate struct {
	Title    *string
	Content  *string
	Mood     *string
	Emotions []string
}
