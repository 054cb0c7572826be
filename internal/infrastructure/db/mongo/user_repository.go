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

const usersCollection = "users"

// UserRepository persists user accounts in the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID                   primitive.ObjectID          `bson:"_id,omitempty"`
	FullName             string                      `bson:"full_name"`
	Email                string                      `bson:"email"`
	PasswordHash         string                      `bson:"password_hash"`
	Role                 string                      `bson:"role"`
	Age                  int                         `bson:"age,omitempty"`
	WeightKg             float64                     `bson:"weight_kg,omitempty"`
	HeightCm             float64                     `bson:"height_cm,omitempty"`
	DateOfBirth          *time.Time                  `bson:"date_of_birth,omitempty"`
	HealthGoals          []string                    `bson:"health_goals,omitempty"`
	AvatarURL            string                      `bson:"avatar_url,omitempty"`
	AccountStatus        string                      `bson:"account_status"`
	AuthProvider         string                      `bson:"auth_provider"`
	NotificationSettings domain.NotificationSettings `bson:"notification_settings"`
	AppLockEnabled       bool                        `bson:"app_lock_enabled"`
	AppLockPinHash       string                      `bson:"app_lock_pin_hash,omitempty"`
	CreatedAt            time.Time                   `bson:"created_at"`
	UpdatedAt            time.Time                   `bson:"updated_at"`
}

func toMongoUser(u *domain.User) *mongoUser {
	return &mongoUser{
		FullName:             u.FullName,
		Email:                u.Email,
		PasswordHash:         u.PasswordHash,
		Role:                 u.Role,
		Age:                  u.Age,
		WeightKg:             u.WeightKg,
		HeightCm:             u.HeightCm,
		DateOfBirth:          u.DateOfBirth,
		HealthGoals:          u.HealthGoals,
		AvatarURL:            u.AvatarURL,
		AccountStatus:        u.AccountStatus,
		AuthProvider:         u.AuthProvider,
		NotificationSettings: u.NotificationSettings,
		AppLockEnabled:       u.AppLockEnabled,
		AppLockPinHash:       u.AppLockPinHash,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                   mu.ID.Hex(),
		FullName:             mu.FullName,
		Email:                mu.Email,
		PasswordHash:         mu.PasswordHash,
		Role:                 mu.Role,
		Age:                  mu.Age,
		WeightKg:             mu.WeightKg,
		HeightCm:             mu.HeightCm,
		DateOfBirth:          mu.DateOfBirth,
		HealthGoals:          mu.HealthGoals,
		AvatarURL:            mu.AvatarURL,
		AccountStatus:        mu.AccountStatus,
		AuthProvider:         mu.AuthProvider,
		NotificationSettings: mu.NotificationSettings,
		AppLockEnabled:       mu.AppLockEnabled,
		AppLockPinHash:       mu.AppLockPinHash,
		CreatedAt:            mu.CreatedAt,
		UpdatedAt:            mu.UpdatedAt,
	}
}

// Create inserts a new user. The unique email index turns a race between two
// simultaneous registrations into one winner and one ErrEmailExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toMongoUser(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return mu.toDomain(), nil
}

// Update replaces the stored document for the user's id.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toMongoUser(user))
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepository) UpdatePasswordByEmail(ctx context.Context, email, passwordHash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"password_hash": passwordHash, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, *mu.toDomain())
	}
	return users, cur.Err()
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *UserRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{"account_status": status})
}

// EnsureIndexes creates the unique email index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
