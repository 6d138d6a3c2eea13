// File: internal/usecase/ambassador_uc.go
package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hotspot-voucher-platform/internal/domain"
	"hotspot-voucher-platform/internal/domain/model"
	"hotspot-voucher-platform/internal/domain/ports/adapter"
	"hotspot-voucher-platform/internal/domain/ports/repository"
)

// Compile-time check
var _ AmbassadorUseCase = (*ambassadorUC)(nil)

type AmbassadorUseCase interface {
	// Create opens an ambassador profile for an identity-provider user. Name,
	// email and referral code are optional; missing values fall back to
	// directory data and a generated code.
	Create(ctx context.Context, userID, name, email, referralCode string) (*model.Ambassador, error)
	// GetByUserID returns the profile owned by userID plus dashboard stats.
	GetByUserID(ctx context.Context, userID string) (*model.Ambassador, *model.AmbassadorStats, error)
	List(ctx context.Context) ([]*model.Ambassador, error)
}

type ambassadorUC struct {
	ambassadors repository.AmbassadorRepository
	directory   adapter.UserDirectory
	log         *zerolog.Logger
}

func NewAmbassadorUseCase(ambassadors repository.AmbassadorRepository, directory adapter.UserDirectory, log *zerolog.Logger) *ambassadorUC {
	return &ambassadorUC{ambassadors: ambassadors, directory: directory, log: log}
}

func (u *ambassadorUC) Create(ctx context.Context, userID, name, email, referralCode string) (*model.Ambassador, error) {
	if userID == "" {
		return nil, domain.ErrInvalidArgument
	}

	info, err := u.directory.Lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = info.Name
	}
	if name == "" && info.Email != "" {
		name = strings.SplitN(info.Email, "@", 2)[0]
	}
	if name == "" {
		name = "New Ambassador"
	}
	if email == "" {
		email = info.Email
	}
	if referralCode == "" {
		referralCode = generateReferralCode(name)
	}

	a := &model.Ambassador{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         name,
		Email:        email,
		ReferralCode: referralCode,
	}
	if err := u.ambassadors.Create(ctx, a); err != nil {
		return nil, err
	}

	u.log.Info().Str("ambassador_id", a.ID).Str("referral_code", a.ReferralCode).Msg("ambassador created")
	return a, nil
}

func (u *ambassadorUC) GetByUserID(ctx context.Context, userID string) (*model.Ambassador, *model.AmbassadorStats, error) {
	a, err := u.ambassadors.FindByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	// Signup/click tracking is not built; the dashboard shows fixed numbers.
	stats := &model.AmbassadorStats{Signups: 12, Clicks: 150}
	return a, stats, nil
}

func (u *ambassadorUC) List(ctx context.Context) ([]*model.Ambassador, error) {
	return u.ambassadors.ListAll(ctx)
}

// generateReferralCode derives a short shareable code from the display name:
// up to four leading characters, spaces stripped, plus a random suffix.
func generateReferralCode(name string) string {
	prefix := name
	if r := []rune(prefix); len(r) > 4 {
		prefix = string(r[:4])
	}
	prefix = strings.ToLower(strings.ReplaceAll(prefix, " ", ""))
	return prefix + randomString(4)
}
