package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mindhaven/wellness-api/internal/core/domain"
)

const checkInCollection = "daily_checkins"

// CheckInRepository persists daily check-ins. The unique (user_id, date)
// index enforces one entry per user per day.
type CheckInRepository struct {
	coll *mongo.Collection
}

func NewCheckInRepository(db *mongo.Database) *CheckInRepository {
	return &CheckInRepository{coll: db.Collection(checkInCollection)}
}

type mongoCheckIn struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Mood      int                `bson:"mood"`
	Energy    int                `bson:"energy"`
	Note      string             `bson:"note,omitempty"`
	Date      string             `bson:"date"`
	Theme     domain.MoodTheme   `bson:"theme"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (mc *mongoCheckIn) toDomain() *domain.DailyCheckIn {
	return &domain.DailyCheckIn{
		ID:        mc.ID.Hex(),
		UserID:    mc.UserID,
		Mood:      mc.Mood,
		Energy:    mc.Energy,
		Note:      mc.Note,
		Date:      mc.Date,
		Theme:     mc.Theme,
		CreatedAt: mc.CreatedAt,
		UpdatedAt: mc.UpdatedAt,
	}
}

// Upsert writes today's entry, replacing an earlier submission for the same
// (user, date) and preserving its original created_at.
func (r *CheckInRepository) Upsert(ctx context.Context, entry *domain.DailyCheckIn) (*domain.DailyCheckIn, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": entry.UserID, "date": entry.Date}
	update := bson.M{
		"$set": bson.M{
			"mood":       entry.Mood,
			"energy":     entry.Energy,
			"note":       entry.Note,
			"theme":      entry.Theme,
			"updated_at": entry.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"user_id":    entry.UserID,
			"date":       entry.Date,
			"created_at": entry.CreatedAt,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var mc mongoCheckIn
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mc); err != nil {
		return nil, fmt.Errorf("upsert check-in: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CheckInRepository) FindByDate(ctx context.Context, userID, date string) (*domain.DailyCheckIn, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCheckIn
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID, "date": date}).Decode(&mc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCheckInNotFound
		}
		return nil, fmt.Errorf("find check-in: %w", err)
	}
	return mc.toDomain(), nil
}

// FindRange returns entries with from <= date <= to, oldest first. The
// YYYY-MM-DD encoding makes lexicographic order equal chronological order.
func (r *CheckInRepository) FindRange(ctx context.Context, userID, from, to string) ([]domain.DailyCheckIn, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": from, "$lte": to},
	}
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find check-in range: %w", err)
	}
	defer cur.Close(ctx)

	var items []domain.DailyCheckIn
	for cur.Next(ctx) {
		var mc mongoCheckIn
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode check-in: %w", err)
		}
		items = append(items, *mc.toDomain())
	}
	return items, cur.Err()
}

func (r *CheckInRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}

// AverageMood aggregates the mean mood across all check-ins; 0 when empty.
func (r *CheckInRepository) AverageMood(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": nil, "avg_mood": bson.M{"$avg": "$mood"}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("average mood: %w", err)
	}
	defer cur.Close(ctx)

	var result struct {
		AvgMood float64 `bson:"avg_mood"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&result); err != nil {
			return 0, fmt.Errorf("decode average mood: %w", err)
		}
	}
	return result.AvgMood, cur.Err()
}

// EnsureIndexes enforces one check-in per user per day.
func (r *CheckInRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
