package repository

import (
	"context"

	"hotspot-voucher-platform/internal/domain/model"
)

// AmbassadorRepository is the port for ambassador persistence.
type AmbassadorRepository interface {
	// Create inserts a new ambassador. A duplicate user_id or referral_code
	// surfaces as domain.ErrAlreadyExists.
	Create(ctx context.Context, a *model.Ambassador) error
	FindByReferralCode(ctx context.Context, code string) (*model.Ambassador, error)
	// FindByUserID looks up the profile owned by an identity-provider user.
	FindByUserID(ctx context.Context, userID string) (*model.Ambassador, error)
	ListAll(ctx context.Context) ([]*model.Ambassador, error)
}
