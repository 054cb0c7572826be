package ports

import (
	"context"

	"github.com/mindhaven/wellness-api/internal/core/domain"
)

// OtpRepository defines the persistence interface for the OTP ledger.
// Upsert replaces any live record for the same (email, purpose), so at most
// one code per pair can ever verify.
type OtpRepository interface {
	Upsert(ctx context.Context, record *domain.OtpRecord) error
	Find(ctx context.Context, email string, purpose domain.OtpPurpose) (*domain.OtpRecord, error)
	Delete(ctx context.Context, email string, purpose domain.OtpPurpose) error
}
