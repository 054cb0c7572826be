package ports

import (
	"context"

	"github.com/mindhaven/wellness-api/internal/core/domain"
)

// JournalRepository persists journal entries. Listing and search exclude
// soft-deleted entries; FindByID returns them so restore can work.
type JournalRepository interface {
	Insert(ctx context.Context, entry *domain.JournalEntry) (*domain.JournalEntry, error)
	FindByID(ctx context.Context, userID, id string) (*domain.JournalEntry, error)
	Update(ctx context.Context, entry *domain.JournalEntry) (*domain.JournalEntry, error)
	List(ctx context.Context, userID string, limit int) ([]domain.JournalEntry, error)
	Search(ctx context.Context, userID, query string) ([]domain.JournalEntry, error)
}
