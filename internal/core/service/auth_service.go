package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mindhaven/wellness-api/internal/core/domain"
	"github.com/mindhaven/wellness-api/internal/core/ports"
)

const (
	otpTTL         = 5 * time.Minute
	otpDigits      = 6
	resendWindow   = 60 * time.Second
	passwordCost   = 10
	otpMailSubject = "Your OTP Code"
)

// AuthService implements the OTP-gated registration, login, password reset
// and token refresh workflows. A user document is only created once the
// REGISTER code verifies; until then the pending form lives on the OTP
// record.
type AuthService struct {
	users   ports.UserRepository
	otps    ports.OtpRepository
	tokens  ports.TokenService
	limiter ports.RateLimiter
	mail    ports.MailQueue
	log     zerolog.Logger

	defaultAvatarURL string
	now              func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	otps ports.OtpRepository,
	tokens ports.TokenService,
	limiter ports.RateLimiter,
	mail ports.MailQueue,
	defaultAvatarURL string,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:            users,
		otps:             otps,
		tokens:           tokens,
		limiter:          limiter,
		mail:             mail,
		log:              log,
		defaultAvatarURL: defaultAvatarURL,
		now:              time.Now,
	}
}

// Register starts the OTP-gated flow: no user document is written here.
// The password is hashed immediately so the plaintext never reaches the
// ledger.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) error {
	email := normalizeEmail(input.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.ErrEmailExists
	} else if err != domain.ErrUserNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), passwordCost)
	if err != nil {
		return err
	}

	return s.issueOtp(ctx, email, domain.PurposeRegister, domain.RegisterPayload{
		FullName:     input.FullName,
		Age:          input.Age,
		WeightKg:     input.WeightKg,
		PasswordHash: string(hash),
	})
}

// VerifyRegisterOtp consumes the code and creates the account.
func (s *AuthService) VerifyRegisterOtp(ctx context.Context, email, code string) (*domain.User, error) {
	email = normalizeEmail(email)

	payload, err := s.consumeOtp(ctx, email, domain.PurposeRegister, code)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		FullName:             payload.FullName,
		Email:                email,
		PasswordHash:         payload.PasswordHash,
		Role:                 domain.RoleUser,
		Age:                  payload.Age,
		WeightKg:             payload.WeightKg,
		AvatarURL:            s.defaultAvatarURL,
		AccountStatus:        domain.AccountActive,
		AuthProvider:         domain.ProviderLocal,
		NotificationSettings: domain.DefaultNotificationSettings(),
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", email).Msg("registration completed")
	return created, nil
}

// ResendRegisterOtp re-issues a pending REGISTER code, carrying over the
// payload of the record it supersedes. Soft-guarded by the rate limiter.
func (s *AuthService) ResendRegisterOtp(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	allowed, err := s.limiter.Allow(ctx, "otp:resend:"+email, resendWindow)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("rate limiter unavailable, allowing resend")
	} else if !allowed {
		return domain.ErrRateLimited
	}

	record, err := s.otps.Find(ctx, email, domain.PurposeRegister)
	if err != nil {
		return err
	}

	return s.issueOtp(ctx, email, domain.PurposeRegister, record.Payload)
}

// ForgotPassword issues a FORGOT_PASSWORD code for a known account.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		return err
	}

	return s.issueOtp(ctx, email, domain.PurposeForgotPassword, domain.RegisterPayload{})
}

// VerifyForgotOtp checks the code without consuming it, so the client can
// gate its reset form before asking for the new password.
func (s *AuthService) VerifyForgotOtp(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)

	record, err := s.otps.Find(ctx, email, domain.PurposeForgotPassword)
	if err != nil {
		return err
	}
	return s.checkOtp(record, code)
}

// ResetPassword consumes the code and re-hashes the password.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)

	if _, err := s.consumeOtp(ctx, email, domain.PurposeForgotPassword, code); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), passwordCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePasswordByEmail(ctx, email, string(hash)); err != nil {
		return err
	}

	s.log.Info().Str("email", email).Msg("password reset")
	return nil
}

// Login authenticates credentials and mints both token classes. Failures
// stay internally distinct (user not found vs banned vs bad password) even
// when the transport coalesces them.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.AccountStatus == domain.AccountBanned {
		return nil, domain.ErrAccountBanned
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidPassword
	}

	access, err := s.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("login")
	return &ports.LoginResult{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// Refresh verifies the cookie token and mints a new access token. The
// refresh token itself is not rotated. The account is re-read so a ban
// since login closes the refresh path.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	if user.AccountStatus == domain.AccountBanned {
		return "", domain.ErrAccountBanned
	}

	return s.tokens.IssueAccessToken(user.ID, user.Role)
}

// issueOtp supersedes any live record for (email, purpose), stores the code
// hash and queues delivery. Delivery is fire-and-forget: the code is valid
// even if the mail bounces.
func (s *AuthService) issueOtp(ctx context.Context, email string, purpose domain.OtpPurpose, payload domain.RegisterPayload) error {
	code, err := generateOtpCode()
	if err != nil {
		return err
	}

	record := &domain.OtpRecord{
		Email:     email,
		Purpose:   purpose,
		CodeHash:  hashOtpCode(code),
		Payload:   payload,
		ExpiresAt: s.now().UTC().Add(otpTTL),
	}
	if err := s.otps.Upsert(ctx, record); err != nil {
		return err
	}

	s.mail.Enqueue(ports.OutboundEmail{
		To:      email,
		Subject: otpMailSubject,
		Body:    fmt.Sprintf("<h3>Your OTP: <b>%s</b></h3><p>Valid for 5 minutes</p>", code),
	})

	s.log.Info().Str("email", email).Str("purpose", string(purpose)).Msg("otp issued")
	return nil
}

// consumeOtp validates the submitted code and deletes the record on success,
// so a code verifies at most once.
func (s *AuthService) consumeOtp(ctx context.Context, email string, purpose domain.OtpPurpose, code string) (domain.RegisterPayload, error) {
	record, err := s.otps.Find(ctx, email, purpose)
	if err != nil {
		return domain.RegisterPayload{}, err
	}
	if err := s.checkOtp(record, code); err != nil {
		return domain.RegisterPayload{}, err
	}
	if err := s.otps.Delete(ctx, email, purpose); err != nil {
		return domain.RegisterPayload{}, err
	}
	return record.Payload, nil
}

// checkOtp re-checks expiry even though the store reaps expired records,
// covering the window before the TTL monitor runs.
func (s *AuthService) checkOtp(record *domain.OtpRecord, code string) error {
	if record.Expired(s.now().UTC()) {
		return domain.ErrOtpExpired
	}
	if hashOtpCode(code) != record.CodeHash {
		return domain.ErrOtpInvalid
	}
	return nil
}

// generateOtpCode returns a zero-padded numeric code from crypto/rand.
func generateOtpCode() (string, error) {
	limit := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		limit.Mul(limit, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}

func hashOtpCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
