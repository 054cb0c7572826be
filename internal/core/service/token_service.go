package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mindhaven/wellness-api/internal/core/domain"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenService issues and verifies HS256-signed access and refresh tokens.
// The two token classes are signed with separate secrets; sharing key
// material between them is a construction-time error.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenService fails fast when either secret is empty. There is no
// fallback from the refresh secret onto the access secret.
func NewTokenService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	if accessSecret == "" {
		return nil, fmt.Errorf("access token: %w", domain.ErrMissingSecret)
	}
	if refreshSecret == "" {
		return nil, fmt.Errorf("refresh token: %w", domain.ErrMissingSecret)
	}
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}, nil
}

// IssueAccessToken mints a short-lived token carrying user id and role.
func (s *TokenService) IssueAccessToken(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  time.Now().Add(s.accessTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.accessSecret)
}

// IssueRefreshToken mints a long-lived token carrying only the user id.
func (s *TokenService) IssueRefreshToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(s.refreshTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.refreshSecret)
}

func (s *TokenService) VerifyAccessToken(token string) (*domain.TokenClaims, error) {
	return verify(token, s.accessSecret)
}

func (s *TokenService) VerifyRefreshToken(token string) (*domain.TokenClaims, error) {
	return verify(token, s.refreshSecret)
}

// verify parses and validates an HS256 token; any signature, alg, shape or
// expiry failure collapses into ErrInvalidToken.
func verify(token string, secret []byte) (*domain.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrInvalidToken
	}
	role, _ := claims["role"].(string)

	return &domain.TokenClaims{UserID: sub, Role: role}, nil
}
