package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mindhaven/wellness-api/internal/core/domain"
)

const journalCollection = "journal_entries"

// JournalRepository persists journal entries.
type JournalRepository struct {
	coll *mongo.Collection
}

func NewJournalRepository(db *mongo.Database) *JournalRepository {
	return &JournalRepository{coll: db.Collection(journalCollection)}
}

type mongoJournalEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Date      string             `bson:"date"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Mood      string             `bson:"mood,omitempty"`
	Emotions  []string           `bson:"emotions,omitempty"`
	IsDeleted bool               `bson:"is_deleted"`
	DeletedAt *time.Time         `bson:"deleted_at,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func toMongoJournalEntry(e *domain.JournalEntry) *mongoJournalEntry {
	return &mongoJournalEntry{
		UserID:    e.UserID,
		Date:      e.Date,
		Title:     e.Title,
		Content:   e.Content,
		Mood:      e.Mood,
		Emotions:  e.Emotions,
		IsDeleted: e.IsDeleted,
		DeletedAt: e.DeletedAt,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (me *mongoJournalEntry) toDomain() *domain.JournalEntry {
	return &domain.JournalEntry{
		ID:        me.ID.Hex(),
		UserID:    me.UserID,
		Date:      me.Date,
		Title:     me.Title,
		Content:   me.Content,
		Mood:      me.Mood,
		Emotions:  me.Emotions,
		IsDeleted: me.IsDeleted,
		DeletedAt: me.DeletedAt,
		CreatedAt: me.CreatedAt,
		UpdatedAt: me.UpdatedAt,
	}
}

func (r *JournalRepository) Insert(ctx context.Context, entry *domain.JournalEntry) (*domain.JournalEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toMongoJournalEntry(entry))
	if err != nil {
		return nil, fmt.Errorf("insert journal entry: %w", err)
	}

	created := *entry
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindByID scopes by owner so one user can never read another's entries.
// Soft-deleted entries are returned; the service decides their visibility.
func (r *JournalRepository) FindByID(ctx context.Context, userID, id string) (*domain.JournalEntry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJournalEntryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var me mongoJournalEntry
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJournalEntryNotFound
		}
		return nil, fmt.Errorf("find journal entry: %w", err)
	}
	return me.toDomain(), nil
}

func (r *JournalRepository) Update(ctx context.Context, entry *domain.JournalEntry) (*domain.JournalEntry, error) {
	oid, err := primitive.ObjectIDFromHex(entry.ID)
	if err != nil {
		return nil, domain.ErrJournalEntryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid, "user_id": entry.UserID}, toMongoJournalEntry(entry))
	if err != nil {
		return nil, fmt.Errorf("update journal entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrJournalEntryNotFound
	}
	return entry, nil
}

func (r *JournalRepository) List(ctx context.Context, userID string, limit int) ([]domain.JournalEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": userID, "is_deleted": false}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	return r.decodeAll(ctx, filter, opts)
}

// Search matches title or content case-insensitively. The query is quoted
// so user input is never interpreted as a regex.
func (r *JournalRepository) Search(ctx context.Context, userID, query string) ([]domain.JournalEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"user_id":    userID,
		"is_deleted": false,
		"$or": []bson.M{
			{"title": pattern},
			{"content": pattern},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	return r.decodeAll(ctx, filter, opts)
}

func (r *JournalRepository) decodeAll(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.JournalEntry, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer cur.Close(ctx)

	var items []domain.JournalEntry
	for cur.Next(ctx) {
		var me mongoJournalEntry
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode journal entry: %w", err)
		}
		items = append(items, *me.toDomain())
	}
	return items, cur.Err()
}

// EnsureIndexes supports the per-user listing order.
func (r *JournalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
