package ports

import (
	"context"

	"github.com/mindhaven/wellness-api/internal/core/domain"
)

// JournalEntryInput is a new journal entry as submitted by the client.
type JournalEntryInput struct {
	Title    string
	Content  string
	Mood     string
	Emotions []string
}

// JournalService manages journal entries with soft delete and restore.
type JournalService interface {
	CreateEntry(ctx context.Context, userID string, input JournalEntryInput) (*domain.JournalEntry, error)
	GetEntry(ctx context.Context, userID, id string) (*domain.JournalEntry, error)
	UpdateEntry(ctx context.Context, userID, id string, update domain.JournalUpdate) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, userID string, limit int) ([]domain.JournalEntry, error)
	SearchEntries(ctx context.Context, userID, query string) ([]domain.JournalEntry, error)
	DeleteEntry(ctx context.Context, userID, id string) error
	RestoreEntry(ctx context.Context, userID, id string) (*domain.JournalEntry, error)
}
