package ports

import (
	"context"

	"github.com/mindhaven/wellness-api/internal/core/domain"
)

// SystemStats is the system-wide aggregate view for the admin dashboard.
type SystemStats struct {
	TotalUsers        int64   `json:"total_users"`
	ActiveUsers       int64   `json:"active_users"`
	TotalCheckIns     int64   `json:"total_check_ins"`
	AverageSystemMood float64 `json:"average_system_mood"`
}

// AdminService exposes the role-gated system-wide views.
type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	Stats(ctx context.Context) (*SystemStats, error)
}
