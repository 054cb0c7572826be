package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mindhaven/wellness-api/internal/core/domain"
	"github.com/mindhaven/wellness-api/internal/core/ports"
)

var pinPattern = regexp.MustCompile(`^\d{6}$`)

// ProfileService implements the self-service account operations.
type ProfileService struct {
	users            ports.UserRepository
	defaultAvatarURL string
	log              zerolog.Logger
	now              func() time.Time
}

func NewProfileService(users ports.UserRepository, defaultAvatarURL string, log zerolog.Logger) *ProfileService {
	return &ProfileService{
		users:            users,
		defaultAvatarURL: defaultAvatarURL,
		log:              log,
		now:              time.Now,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.applyDefaultAvatar(user)
	return user, nil
}

// UpdateProfile applies only the allowed self-service fields.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.FullName != nil {
		user.FullName = strings.TrimSpace(*update.FullName)
	}
	if update.Age != nil {
		user.Age = *update.Age
	}
	if update.WeightKg != nil {
		user.WeightKg = *update.WeightKg
	}
	if update.HeightCm != nil {
		user.HeightCm = *update.HeightCm
	}
	if update.DateOfBirth != nil {
		user.DateOfBirth = update.DateOfBirth
	}
	if update.HealthGoals != nil {
		user.HealthGoals = update.HealthGoals
	}
	user.UpdatedAt = s.now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.applyDefaultAvatar(updated)
	return updated, nil
}

// ChangePassword requires the current password to match before re-hashing.
func (s *ProfileService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), passwordCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hash)
	user.UpdatedAt = s.now().UTC()
	if _, err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

// SetAppLockPin stores a bcrypt hash of a 6-digit PIN and enables app lock.
func (s *ProfileService) SetAppLockPin(ctx context.Context, userID, pin string) (*domain.User, error) {
	if !pinPattern.MatchString(pin) {
		return nil, domain.ErrInvalidPin
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), passwordCost)
	if err != nil {
		return nil, err
	}

	user.AppLockPinHash = string(hash)
	user.AppLockEnabled = true
	user.UpdatedAt = s.now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.applyDefaultAvatar(updated)
	return updated, nil
}

// VerifyAppLockPin compares a submitted PIN against the stored hash.
func (s *ProfileService) VerifyAppLockPin(ctx context.Context, userID, pin string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.AppLockEnabled || user.AppLockPinHash == "" {
		return domain.ErrInvalidPin
	}
	if bcrypt.CompareHashAndPassword([]byte(user.AppLockPinHash), []byte(pin)) != nil {
		return domain.ErrInvalidPin
	}
	return nil
}

// ResetAvatar points the profile back at the configured default image.
func (s *ProfileService) ResetAvatar(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.AvatarURL = s.defaultAvatarURL
	user.UpdatedAt = s.now().UTC()

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// applyDefaultAvatar normalizes blank or non-http(s) avatar URLs onto the
// configured default before the view leaves the service.
func (s *ProfileService) applyDefaultAvatar(user *domain.User) {
	url := strings.TrimSpace(user.AvatarURL)
	if url == "" || (!strings.HasPrefix(strings.ToLower(url), "http://") && !strings.HasPrefix(strings.ToLower(url), "https://")) {
		user.AvatarURL = s.defaultAvatarURL
		return
	}
	user.AvatarURL = url
}
