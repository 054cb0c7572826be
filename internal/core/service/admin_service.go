package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mindhaven/wellness-api/internal/core/domain"
	"github.com/mindhaven/wellness-api/internal/core/ports"
)

// AdminService backs the role-gated system-wide views. Authorization lives
// in the RBAC middleware; this service assumes an admin caller.
type AdminService struct {
	users    ports.UserRepository
	checkins ports.CheckInRepository
	log      zerolog.Logger
}

func NewAdminService(users ports.UserRepository, checkins ports.CheckInRepository, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, checkins: checkins, log: log}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// Stats aggregates the dashboard counters in one call.
func (s *AdminService) Stats(ctx context.Context) (*ports.SystemStats, error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.users.CountByStatus(ctx, domain.AccountActive)
	if err != nil {
		return nil, err
	}
	checkins, err := s.checkins.Count(ctx)
	if err != nil {
		return nil, err
	}
	avgMood, err := s.checkins.AverageMood(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.SystemStats{
		TotalUsers:        total,
		ActiveUsers:       active,
		TotalCheckIns:     checkins,
		AverageSystemMood: avgMood,
	}, nil
}
