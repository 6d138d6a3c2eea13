// File: internal/usecase/completion_uc.go
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"hotspot-voucher-platform/internal/domain"
	"hotspot-voucher-platform/internal/domain/model"
	"hotspot-voucher-platform/internal/domain/ports/adapter"
	"hotspot-voucher-platform/internal/domain/ports/repository"
	"hotspot-voucher-platform/internal/infra/logging"
	"hotspot-voucher-platform/internal/infra/metrics"
	red "hotspot-voucher-platform/internal/infra/redis"
)

// Compile-time check
var _ CompletionUseCase = (*completionUC)(nil)

// CompletionOutcome is what a webhook handler acknowledges to the gateway.
type CompletionOutcome string

const (
	OutcomeCompleted CompletionOutcome = "completed"
	// OutcomeDuplicate: the purchase was already completed; the delivery is
	// acknowledged without re-provisioning.
	OutcomeDuplicate CompletionOutcome = "duplicate"
)

// CompletionRequest carries a gateway-confirmed payment into the shared
// completion state machine. PaidAmount == 0 skips the tamper check, for
// gateways that do not report a server-verified amount (Campay).
type CompletionRequest struct {
	Gateway      string
	SessionID    string
	PaidAmount   int64
	PaidCurrency string
}

type CompletionUseCase interface {
	// Complete runs the pending -> completed transition for one paid session:
	// tamper check, router provisioning, guarded state update, commission and
	// notification side effects. Safe to call for redelivered notifications.
	Complete(ctx context.Context, req CompletionRequest) (CompletionOutcome, error)
}

type completionUC struct {
	purchases   repository.PurchaseRepository
	tariffs     repository.TariffRepository
	commissions repository.CommissionRepository
	router      adapter.RouterClient
	locker      red.Locker
	notifier    adapter.Notifier
	alerter     adapter.OpsAlerter
	currency    string // expected settlement currency, e.g. "XAF"
	log         *zerolog.Logger
}

func NewCompletionUseCase(
	purchases repository.PurchaseRepository,
	tariffs repository.TariffRepository,
	commissions repository.CommissionRepository,
	router adapter.RouterClient,
	locker red.Locker,
	notifier adapter.Notifier,
	alerter adapter.OpsAlerter,
	currency string,
	log *zerolog.Logger,
) *completionUC {
	return &completionUC{
		purchases:   purchases,
		tariffs:     tariffs,
		commissions: commissions,
		router:      router,
		locker:      locker,
		notifier:    notifier,
		alerter:     alerter,
		currency:    currency,
		log:         log,
	}
}

// lockTTL must outlive the slowest router round-trip by a wide margin.
const lockTTL = 30 * time.Second

func (u *completionUC) Complete(ctx context.Context, req CompletionRequest) (CompletionOutcome, error) {
	// Gateways redeliver webhooks; serialize completion per session so two
	// deliveries cannot both provision a router account.
	lockKey := red.SessionLockKey(req.SessionID)
	lockToken, err := u.locker.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return "", err
	}
	defer func() { _ = u.locker.Unlock(ctx, lockKey, lockToken) }()

	ctx = logging.WithSessionID(ctx, req.SessionID)
	log := logging.With(ctx, u.log)

	p, err := u.purchases.FindBySessionID(ctx, req.SessionID)
	if err != nil {
		return "", err
	}
	log = logging.With(logging.WithPurchaseID(ctx, p.ID), u.log)

	if req.PaidAmount > 0 {
		if req.PaidAmount < p.Amount || !strings.EqualFold(req.PaidCurrency, u.currency) {
			log.Error().Int64("expected", p.Amount).Int64("paid", req.PaidAmount).
				Str("currency", req.PaidCurrency).Msg("paid amount or currency mismatch, possible tampering")
			return "", domain.ErrAmountMismatch
		}
	}

	if p.State == model.PurchaseStateCompleted {
		log.Info().Msg("purchase already completed, acknowledging redelivery")
		return OutcomeDuplicate, nil
	}

	tariff, err := u.tariffs.FindByID(ctx, p.TariffID)
	if err != nil {
		return "", fmt.Errorf("load tariff for purchase %s: %w", p.ID, err)
	}

	username := newHotspotUsername()
	password := randomString(8)

	acc := adapter.HotspotAccount{
		Username:    username,
		Password:    password,
		LimitUptime: FormatLimitUptime(tariff.DurationSeconds),
		Comment:     "purchase_id:" + p.ID,
	}
	if err := u.router.CreateHotspotUser(ctx, acc); err != nil {
		// Leave the purchase pending; the gateway's own retry policy will
		// bring the notification back.
		metrics.IncRouterProvision("error")
		log.Error().Err(err).Msg("router provisioning failed")
		u.bestEffortAlert(ctx, fmt.Sprintf("⚠ Router provisioning failed for purchase %s: %v", p.ID, err))
		return "", fmt.Errorf("provision hotspot account: %w", err)
	}
	metrics.IncRouterProvision("ok")

	committed, err := u.purchases.CompletePending(ctx, p.ID, username, password)
	if err != nil {
		// The router account exists but is not recorded. There is no
		// automatic reconciliation; surface loudly for the operator.
		log.Error().Err(err).Str("mikrotik_user", username).
			Msg("purchase update failed after provisioning, account is orphaned")
		u.bestEffortAlert(ctx, fmt.Sprintf("⚠ Orphaned hotspot account %s for purchase %s", username, p.ID))
		return "", fmt.Errorf("record completed purchase: %w", err)
	}
	if !committed {
		// A concurrent delivery slipped in between our state read and the
		// guarded update. Its credentials won; ours provisioned a spare
		// account that will expire on its own uptime limit.
		log.Warn().Str("mikrotik_user", username).Msg("lost completion race, acknowledging as duplicate")
		return OutcomeDuplicate, nil
	}

	metrics.IncPurchaseCompleted(req.Gateway)
	metrics.AddRevenue(u.currency, p.Amount)
	log.Info().Str("gateway", req.Gateway).Str("mikrotik_user", username).Msg("purchase completed")

	// Side effects below never fail the webhook: access is already granted.
	if p.ReferralID != "" && p.UserID != "" {
		if err := u.commissions.Add(ctx, p.ReferralID, p.ID, p.Amount, p.UserID); err != nil {
			metrics.IncCommissionFailure()
			log.Error().Err(err).Str("ambassador_id", p.ReferralID).Msg("commission RPC failed")
		}
	}

	if p.UserID != "" {
		body := fmt.Sprintf("Votre code d'accès est: %s", username)
		if err := u.notifier.NotifyUser(ctx, p.UserID, "Paiement Réussi!", body); err != nil {
			log.Warn().Err(err).Msg("user notification failed")
		}
	}

	u.bestEffortAlert(ctx, fmt.Sprintf("✅ Sale: %s, %d %s via %s", tariff.Name, p.Amount, u.currency, req.Gateway))

	return OutcomeCompleted, nil
}

func (u *completionUC) bestEffortAlert(ctx context.Context, msg string) {
	if u.alerter == nil {
		return
	}
	if err := u.alerter.Alert(ctx, msg); err != nil {
		u.log.Warn().Err(err).Msg("ops alert failed")
	}
}
