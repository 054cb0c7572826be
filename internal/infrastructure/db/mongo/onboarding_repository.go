package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mindhaven/wellness-api/internal/core/domain"
)

const onboardingCollection = "onboardings"

// OnboardingRepository keeps one onboarding document per user.
type OnboardingRepository struct {
	coll *mongo.Collection
}

func NewOnboardingRepository(db *mongo.Database) *OnboardingRepository {
	return &OnboardingRepository{coll: db.Collection(onboardingCollection)}
}

func (r *OnboardingRepository) Upsert(ctx context.Context, o *domain.Onboarding) (*domain.Onboarding, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"user_id": o.UserID}
	update := bson.M{
		"$set": bson.M{
			"is_onboarded":          o.IsOnboarded,
			"goals":                 o.Goals,
			"emotional_sensitivity": o.EmotionalSensitivity,
			"reminder_tone":         o.ReminderTone,
			"theme_preference":      o.ThemePreference,
			"updated_at":            o.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"user_id":    o.UserID,
			"created_at": o.CreatedAt,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var saved domain.Onboarding
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, fmt.Errorf("upsert onboarding: %w", err)
	}
	return &saved, nil
}

func (r *OnboardingRepository) Find(ctx context.Context, userID string) (*domain.Onboarding, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.Onboarding
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOnboardingNotFound
		}
		return nil, fmt.Errorf("find onboarding: %w", err)
	}
	return &o, nil
}

// EnsureIndexes enforces one document per user.
func (r *OnboardingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
