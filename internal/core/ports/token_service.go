package ports

import "github.com/mindhaven/wellness-api/internal/core/domain"

// TokenService mints and verifies the two token classes. Access tokens carry
// user id + role; refresh tokens carry only the user id and are intended for
// cookie storage.
type TokenService interface {
	IssueAccessToken(userID, role string) (string, error)
	IssueRefreshToken(userID string) (string, error)
	VerifyAccessToken(token string) (*domain.TokenClaims, error)
	VerifyRefreshToken(token string) (*domain.TokenClaims, error)
}
