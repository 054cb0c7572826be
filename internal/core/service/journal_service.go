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

const defaultJournalLimit = 50

// JournalService manages journal entries. Deletes are soft so entries can be
// restored from the client's trash view.
type JournalService struct {
	entries ports.JournalRepository
	log     zerolog.Logger
	now     func() time.Time
}

func NewJournalService(entries ports.JournalRepository, log zerolog.Logger) *JournalService {
	return &JournalService{entries: entries, log: log, now: time.Now}
}

func (s *JournalService) CreateEntry(ctx context.Context, userID string, input ports.JournalEntryInput) (*domain.JournalEntry, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" && content == "" {
		return nil, fmt.Errorf("entry must have a title or content")
	}

	now := s.now().UTC()
	entry := &domain.JournalEntry{
		UserID:    userID,
		Date:      domain.CheckInDate(now),
		Title:     title,
		Content:   content,
		Mood:      input.Mood,
		Emotions:  input.Emotions,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.entries.Insert(ctx, entry)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("entry_id", created.ID).Msg("journal entry created")
	return created, nil
}

func (s *JournalService) GetEntry(ctx context.Context, userID, id string) (*domain.JournalEntry, error) {
	return s.entries.FindByID(ctx, userID, id)
}

func (s *JournalService) UpdateEntry(ctx context.Context, userID, id string, update domain.JournalUpdate) (*domain.JournalEntry, error) {
	entry, err := s.entries.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if entry.IsDeleted {
		return nil, domain.ErrJournalEntryNotFound
	}

	if update.Title != nil {
		entry.Title = strings.TrimSpace(*update.Title)
	}
	if update.Content != nil {
		entry.Content = strings.TrimSpace(*update.Content)
	}
	if update.Mood != nil {
		entry.Mood = *update.Mood
	}
	if update.Emotions != nil {
		entry.Emotions = update.Emotions
	}
	entry.UpdatedAt = s.now().UTC()

	return s.entries.Update(ctx, entry)
}

func (s *JournalService) ListEntries(ctx context.Context, userID string, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = defaultJournalLimit
	}
	items, err := s.entries.List(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.JournalEntry{}
	}
	return items, nil
}

func (s *JournalService) SearchEntries(ctx context.Context, userID, query string) ([]domain.JournalEntry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListEntries(ctx, userID, 0)
	}
	items, err := s.entries.Search(ctx, userID, query)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.JournalEntry{}
	}
	return items, nil
}

// DeleteEntry flags the entry as deleted; it disappears from listings but
// remains restorable.
func (s *JournalService) DeleteEntry(ctx context.Context, userID, id string) error {
	entry, err := s.entries.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if entry.IsDeleted {
		return domain.ErrJournalEntryNotFound
	}

	now := s.now().UTC()
	entry.IsDeleted = true
	entry.DeletedAt = &now
	entry.UpdatedAt = now

	_, err = s.entries.Update(ctx, entry)
	return err
}

// RestoreEntry clears the deletion flag on a soft-deleted entry.
func (s *JournalService) RestoreEntry(ctx context.Context, userID, id string) (*domain.JournalEntry, error) {
	entry, err := s.entries.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !entry.IsDeleted {
		return entry, nil
	}

	entry.IsDeleted = false
	entry.DeletedAt = nil
	entry.UpdatedAt = s.now().UTC()

	return s.entries.Update(ctx, entry)
}
