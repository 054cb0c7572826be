package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mindhaven/wellness-api/internal/core/domain"
	"github.com/mindhaven/wellness-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub
// ---------------------------------------------------------------------------

type stubJournalRepo struct {
	byID   map[string]*domain.JournalEntry
	nextID int
	seq    int // insertion order, stands in for created_at sorting
	order  map[string]int
}

func newStubJournalRepo() *stubJournalRepo {
	return &stubJournalRepo{
		byID:   make(map[string]*domain.JournalEntry),
		order:  make(map[string]int),
		nextID: 1,
	}
}

func (r *stubJournalRepo) Insert(_ context.Context, entry *domain.JournalEntry) (*domain.JournalEntry, error) {
	clone := *entry
	clone.ID = "entry-" + strconv.Itoa(r.nextID)
	r.nextID++
	r.seq++
	r.byID[clone.ID] = &clone
	r.order[clone.ID] = r.seq
	out := clone
	return &out, nil
}

func (r *stubJournalRepo) FindByID(_ context.Context, userID, id string) (*domain.JournalEntry, error) {
	e, ok := r.byID[id]
	if !ok || e.UserID != userID {
		return nil, domain.ErrJournalEntryNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubJournalRepo) Update(_ context.Context, entry *domain.JournalEntry) (*domain.JournalEntry, error) {
	e, ok := r.byID[entry.ID]
	if !ok || e.UserID != entry.UserID {
		return nil, domain.ErrJournalEntryNotFound
	}
	clone := *entry
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubJournalRepo) List(_ context.Context, userID string, limit int) ([]domain.JournalEntry, error) {
	var out []domain.JournalEntry
	for _, e := range r.byID {
		if e.UserID == userID && !e.IsDeleted {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.order[out[i].ID] > r.order[out[j].ID] })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubJournalRepo) Search(_ context.Context, userID, query string) ([]domain.JournalEntry, error) {
	q := strings.ToLower(query)
	var out []domain.JournalEntry
	for _, e := range r.byID {
		if e.UserID != userID || e.IsDeleted {
			continue
		}
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Content), q) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.order[out[i].ID] > r.order[out[j].ID] })
	return out, nil
}

func newJournalFixture() (*stubJournalRepo, *JournalService) {
	repo := newStubJournalRepo()
	svc := NewJournalService(repo, zerolog.Nop())
	return repo, svc
}

func mustCreateEntry(t *testing.T, svc *JournalService, userID, title, content string) *domain.JournalEntry {
	t.Helper()
	entry, err := svc.CreateEntry(context.Background(), userID, ports.JournalEntryInput{Title: title, Content: content})
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	return entry
}

// ---------------------------------------------------------------------------
// CRUD
// ---------------------------------------------------------------------------

func TestJournalService_Create_TrimsAndDates(t *testing.T) {
	_, svc := newJournalFixture()

	entry := mustCreateEntry(t, svc, "user-1", "  Morning  ", "  slept well  ")
	if entry.Title != "Morning" || entry.Content != "slept well" {
		t.Errorf("fields must be trimmed, got %q / %q", entry.Title, entry.Content)
	}
	if entry.Date == "" {
		t.Error("entry must carry a date key")
	}
	if entry.IsDeleted {
		t.Error("new entries must not be flagged deleted")
	}
}

func TestJournalService_Create_RejectsEmpty(t *testing.T) {
	_, svc := newJournalFixture()

	if _, err := svc.CreateEntry(context.Background(), "user-1", ports.JournalEntryInput{Title: "  ", Content: ""}); err == nil {
		t.Error("expected error for empty entry")
	}
}

func TestJournalService_Get_OwnerScoped(t *testing.T) {
	_, svc := newJournalFixture()
	entry := mustCreateEntry(t, svc, "user-1", "Mine", "content")

	if _, err := svc.GetEntry(context.Background(), "user-2", entry.ID); !errors.Is(err, domain.ErrJournalEntryNotFound) {
		t.Errorf("another user's entry must read as not found, got %v", err)
	}
}

func TestJournalService_Update_PartialFields(t *testing.T) {
	_, svc := newJournalFixture()
	entry := mustCreateEntry(t, svc, "user-1", "Morning", "slept well")

	mood := "calm"
	got, err := svc.UpdateEntry(context.Background(), "user-1", entry.ID, domain.JournalUpdate{Mood: &mood})
	if err != nil {
		t.Fatal(err)
	}
	if got.Mood != "calm" {
		t.Errorf("mood: want calm, got %q", got.Mood)
	}
	if got.Title != "Morning" {
		t.Errorf("untouched title must survive, got %q", got.Title)
	}
}

func TestJournalService_Update_DeletedEntryRejected(t *testing.T) {
	_, svc := newJournalFixture()
	entry := mustCreateEntry(t, svc, "user-1", "Morning", "slept well")
	if err := svc.DeleteEntry(context.Background(), "user-1", entry.ID); err != nil {
		t.Fatal(err)
	}

	title := "Changed"
	if _, err := svc.UpdateEntry(context.Background(), "user-1", entry.ID, domain.JournalUpdate{Title: &title}); !errors.Is(err, domain.ErrJournalEntryNotFound) {
		t.Errorf("updating a deleted entry must fail, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Listing and search
// ---------------------------------------------------------------------------

func TestJournalService_List_NewestFirstWithLimit(t *testing.T) {
	_, svc := newJournalFixture()
	mustCreateEntry(t, svc, "user-1", "first", "a")
	mustCreateEntry(t, svc, "user-1", "second", "b")
	mustCreateEntry(t, svc, "user-1", "third", "c")

	items, err := svc.ListEntries(context.Background(), "user-1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "third" {
		t.Errorf("newest first: want third, got %q", items[0].Title)
	}
}

func TestJournalService_List_EmptyIsSliceNotNil(t *testing.T) {
	_, svc := newJournalFixture()

	items, err := svc.ListEntries(context.Background(), "user-1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if items == nil {
		t.Error("empty listing must serialize as [], not null")
	}
}

func TestJournalService_Search_MatchesTitleAndContent(t *testing.T) {
	_, svc := newJournalFixture()
	mustCreateEntry(t, svc, "user-1", "Gratitude list", "sunshine")
	mustCreateEntry(t, svc, "user-1", "Rough day", "felt grateful anyway")
	mustCreateEntry(t, svc, "user-1", "Nothing", "nothing")

	items, err := svc.SearchEntries(context.Background(), "user-1", "grat")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 matches, got %d", len(items))
	}
}

func TestJournalService_Search_EmptyQueryListsAll(t *testing.T) {
	_, svc := newJournalFixture()
	mustCreateEntry(t, svc, "user-1", "One", "a")
	mustCreateEntry(t, svc, "user-1", "Two", "b")

	items, err := svc.SearchEntries(context.Background(), "user-1", "   ")
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Errorf("blank query must behave like a listing, got %d items", len(items))
	}
}

// ---------------------------------------------------------------------------
// Soft delete and restore
// ---------------------------------------------------------------------------

func TestJournalService_SoftDelete_HidesFromListing(t *testing.T) {
	repo, svc := newJournalFixture()
	entry := mustCreateEntry(t, svc, "user-1", "Morning", "slept well")

	if err := svc.DeleteEntry(context.Background(), "user-1", entry.ID); err != nil {
		t.Fatal(err)
	}

	items, _ := svc.ListEntries(context.Background(), "user-1", 0)
	if len(items) != 0 {
		t.Errorf("deleted entry must not list, got %d items", len(items))
	}
	if stored := repo.byID[entry.ID]; !stored.IsDeleted || stored.DeletedAt == nil {
		t.Error("document must remain with deletion flag and timestamp set")
	}
}

func TestJournalService_Delete_Twice(t *testing.T) {
	_, svc := newJournalFixture()
	entry := mustCreateEntry(t, svc, "user-1", "Morning", "slept well")

	if err := svc.DeleteEntry(context.Background(), "user-1", entry.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteEntry(context.Background(), "user-1", entry.ID); !errors.Is(err, domain.ErrJournalEntryNotFound) {
		t.Errorf("double delete must fail with not found, got %v", err)
	}
}

func TestJournalService_Restore_RoundTrip(t *testing.T) {
	_, svc := newJournalFixture()
	entry := mustCreateEntry(t, svc, "user-1", "Morning", "slept well")
	if err := svc.DeleteEntry(context.Background(), "user-1", entry.ID); err != nil {
		t.Fatal(err)
	}

	restored, err := svc.RestoreEntry(context.Background(), "user-1", entry.ID)
	if err != nil {
		t.Fatal(err)
	}
	if restored.IsDeleted || restored.DeletedAt != nil {
		t.Error("restore must clear the deletion flag and timestamp")
	}

	items, _ := svc.ListEntries(context.Background(), "user-1", 0)
	if len(items) != 1 {
		t.Errorf("restored entry must list again, got %d items", len(items))
	}
}

func TestJournalService_Restore_NotDeletedIsNoop(t *testing.T) {
	_, svc := newJournalFixture()
	entry := mustCreateEntry(t, svc, "user-1", "Morning", "slept well")

	restored, err := svc.RestoreEntry(context.Background(), "user-1", entry.ID)
	if err != nil {
		t.Fatal(err)
	}
	if restored.ID != entry.ID {
		t.Errorf("restore of a live entry must return it unchanged, got %q", restored.ID)
	}
}
