// File: internal/usecase/referral_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"hotspot-voucher-platform/internal/domain"
	"hotspot-voucher-platform/internal/domain/model"
	"hotspot-voucher-platform/internal/domain/ports/repository"
	"hotspot-voucher-platform/internal/infra/metrics"
)

// Compile-time check
var _ ReferralUseCase = (*referralUC)(nil)

type ReferralUseCase interface {
	// ApplyReferral discounts a pending purchase by the configured rate and
	// records the referring ambassador. A purchase takes at most one referral;
	// a second application fails with domain.ErrDiscountApplied.
	ApplyReferral(ctx context.Context, referralCode, sessionID string) (discount, newAmount int64, err error)
}

type referralUC struct {
	ambassadors repository.AmbassadorRepository
	settings    repository.SettingRepository
	purchases   repository.PurchaseRepository
	log         *zerolog.Logger
}

func NewReferralUseCase(ambassadors repository.AmbassadorRepository, settings repository.SettingRepository, purchases repository.PurchaseRepository, log *zerolog.Logger) *referralUC {
	return &referralUC{ambassadors: ambassadors, settings: settings, purchases: purchases, log: log}
}

func (u *referralUC) ApplyReferral(ctx context.Context, referralCode, sessionID string) (int64, int64, error) {
	amb, err := u.ambassadors.FindByReferralCode(ctx, referralCode)
	if err != nil {
		return 0, 0, err
	}

	rate, err := u.discountRate(ctx)
	if err != nil {
		return 0, 0, err
	}

	p, err := u.purchases.FindBySessionID(ctx, sessionID)
	if err != nil {
		return 0, 0, err
	}
	if p.ReferralID != "" {
		return 0, 0, domain.ErrDiscountApplied
	}

	// Integer floor: amount 1000 at 5% gives exactly 50.
	discount := p.Amount * rate / 100
	newAmount := p.Amount - discount

	if err := u.purchases.ApplyDiscount(ctx, p.ID, newAmount, amb.ID); err != nil {
		return 0, 0, err
	}

	metrics.IncDiscountApplied()
	u.log.Info().Str("purchase_id", p.ID).Str("ambassador_id", amb.ID).
		Int64("discount", discount).Int64("new_amount", newAmount).Msg("referral discount applied")

	return discount, newAmount, nil
}

// discountRate reads the configured percentage. A missing or garbled value is
// an operator mistake, not a user error.
func (u *referralUC) discountRate(ctx context.Context) (int64, error) {
	s, err := u.settings.Get(ctx, model.SettingDiscountRate)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrMisconfigured
		}
		return 0, err
	}
	rate, err := strconv.ParseInt(s.Value, 10, 64)
	if err != nil || rate < 0 || rate > 100 {
		return 0, fmt.Errorf("%w: discount_rate=%q", domain.ErrMisconfigured, s.Value)
	}
	return rate, nil
}
