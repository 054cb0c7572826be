package ports

import (
	"context"

	"github.com/mindhaven/wellness-api/internal/core/domain"
)

// CheckInRepository defines the persistence interface for daily check-ins.
// Upsert keys on (user_id, date) so a second submission for the same day
// replaces the first.
type CheckInRepository interface {
	Upsert(ctx context.Context, entry *domain.DailyCheckIn) (*domain.DailyCheckIn, error)
	FindByDate(ctx context.Context, userID, date string) (*domain.DailyCheckIn, error)
	FindRange(ctx context.Context, userID, from, to string) ([]domain.DailyCheckIn, error)
	Count(ctx context.Context) (int64, error)
	AverageMood(ctx context.Context) (float64, error)
}
