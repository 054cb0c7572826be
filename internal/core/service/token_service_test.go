package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mindhaven/wellness-api/internal/core/domain"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestTokenService_RequiresBothSecrets(t *testing.T) {
	if _, err := NewTokenService("", "refresh", 0, 0); !errors.Is(err, domain.ErrMissingSecret) {
		t.Errorf("empty access secret: expected ErrMissingSecret, got %v", err)
	}
	if _, err := NewTokenService("access", "", 0, 0); !errors.Is(err, domain.ErrMissingSecret) {
		t.Errorf("empty refresh secret: expected ErrMissingSecret, got %v", err)
	}
}

func TestTokenService_AccessRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueAccessToken("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID: want %q, got %q", "user-1", claims.UserID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("Role: want %q, got %q", domain.RoleAdmin, claims.Role)
	}
}

func TestTokenService_RefreshCarriesNoRole(t *testing.T) {
	svc := newTestTokenService(t)

	token, err := svc.IssueRefreshToken("user-1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.VerifyRefreshToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID: want %q, got %q", "user-1", claims.UserID)
	}
	if claims.Role != "" {
		t.Errorf("refresh token must not carry a role, got %q", claims.Role)
	}
}

func TestTokenService_SecretsAreNotInterchangeable(t *testing.T) {
	svc := newTestTokenService(t)

	access, _ := svc.IssueAccessToken("user-1", domain.RoleUser)
	refresh, _ := svc.IssueRefreshToken("user-1")

	if _, err := svc.VerifyRefreshToken(access); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("access token must not verify as refresh, got %v", err)
	}
	if _, err := svc.VerifyAccessToken(refresh); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("refresh token must not verify as access, got %v", err)
	}
}

func TestTokenService_TamperedTokenRejected(t *testing.T) {
	svc := newTestTokenService(t)

	token, _ := svc.IssueAccessToken("user-1", domain.RoleUser)
	tampered := token[:len(token)-2] + "xx"

	if _, err := svc.VerifyAccessToken(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestTokenService_ExpiredTokenRejected(t *testing.T) {
	svc, err := NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	svc.accessTTL = -time.Minute

	token, _ := svc.IssueAccessToken("user-1", domain.RoleUser)
	if _, err := svc.VerifyAccessToken(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_RejectsWrongAlgorithm(t *testing.T) {
	svc := newTestTokenService(t)

	// An unsigned token claiming alg=none must never pass.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.VerifyAccessToken(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestTokenService_RejectsMissingSubject(t *testing.T) {
	svc := newTestTokenService(t)

	noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token, err := noSub.SignedString([]byte("access-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.VerifyAccessToken(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken without sub claim, got %v", err)
	}
}

func TestTokenService_GarbageInput(t *testing.T) {
	svc := newTestTokenService(t)

	for _, token := range []string{"", "not-a-jwt", strings.Repeat("a.", 40)} {
		if _, err := svc.VerifyAccessToken(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Errorf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}
