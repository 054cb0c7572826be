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

const otpCollection = "otp_verifications"

// OtpRepository persists the OTP ledger. A TTL index reaps expired records
// and a unique (email, purpose) index guarantees at most one live code per
// pair; Upsert therefore supersedes rather than accumulates.
type OtpRepository struct {
	coll *mongo.Collection
}

func NewOtpRepository(db *mongo.Database) *OtpRepository {
	return &OtpRepository{coll: db.Collection(otpCollection)}
}

func (r *OtpRepository) Upsert(ctx context.Context, record *domain.OtpRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"email": record.Email, "purpose": record.Purpose}
	_, err := r.coll.ReplaceOne(ctx, filter, record, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert otp: %w", err)
	}
	return nil
}

func (r *OtpRepository) Find(ctx context.Context, email string, purpose domain.OtpPurpose) (*domain.OtpRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var record domain.OtpRecord
	err := r.coll.FindOne(ctx, bson.M{"email": email, "purpose": purpose}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOtpNotFound
		}
		return nil, fmt.Errorf("find otp: %w", err)
	}
	return &record, nil
}

func (r *OtpRepository) Delete(ctx context.Context, email string, purpose domain.OtpPurpose) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.DeleteOne(ctx, bson.M{"email": email, "purpose": purpose})
	if err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}

// EnsureIndexes creates the TTL reaper and the uniqueness guarantee.
func (r *OtpRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "purpose", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
