package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every collection index the repositories rely on.
// Called once at startup; index creation is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for name, ensure := range map[string]func(context.Context) error{
		"users":             NewUserRepository(db).EnsureIndexes,
		"otp_verifications": NewOtpRepository(db).EnsureIndexes,
		"daily_checkins":    NewCheckInRepository(db).EnsureIndexes,
		"onboardings":       NewOnboardingRepository(db).EnsureIndexes,
		"journal_entries":   NewJournalRepository(db).EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return fmt.Errorf("ensure indexes for %s: %w", name, err)
		}
	}
	return nil
}
