// File: internal/usecase/session_uc.go
package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hotspot-voucher-platform/internal/domain/model"
	"hotspot-voucher-platform/internal/domain/ports/repository"
	"hotspot-voucher-platform/internal/infra/metrics"
)

// Compile-time check
var _ SessionUseCase = (*sessionUC)(nil)

// Session is what the client needs to hand the payment gateway and to poll
// with afterwards.
type Session struct {
	SessionID  string
	PurchaseID string
	Amount     int64
}

type SessionUseCase interface {
	// CreateSession prices the tariff and opens a pending purchase. userID may
	// be empty for anonymous captive-portal buyers.
	CreateSession(ctx context.Context, tariffID, userID string) (*Session, error)
	// Status returns the purchase for a session token, credentials included
	// once completed.
	Status(ctx context.Context, sessionID string) (*model.Purchase, error)
}

type sessionUC struct {
	tariffs   repository.TariffRepository
	purchases repository.PurchaseRepository
	log       *zerolog.Logger
}

func NewSessionUseCase(tariffs repository.TariffRepository, purchases repository.PurchaseRepository, log *zerolog.Logger) *sessionUC {
	return &sessionUC{tariffs: tariffs, purchases: purchases, log: log}
}

func (u *sessionUC) CreateSession(ctx context.Context, tariffID, userID string) (*Session, error) {
	tariff, err := u.tariffs.FindByID(ctx, tariffID)
	if err != nil {
		return nil, err
	}

	p := &model.Purchase{
		ID:        uuid.NewString(),
		TariffID:  tariffID,
		UserID:    userID,
		SessionID: newSessionID(),
		State:     model.PurchaseStatePending,
		Amount:    tariff.PriceCFA,
	}
	if err := u.purchases.Create(ctx, p); err != nil {
		// a session_id collision lands here too; rare enough to treat as fatal
		return nil, fmt.Errorf("create purchase session: %w", err)
	}

	metrics.IncSessionCreated()
	u.log.Info().Str("purchase_id", p.ID).Str("session_id", p.SessionID).
		Str("tariff_id", tariffID).Int64("amount", p.Amount).Msg("purchase session created")

	return &Session{SessionID: p.SessionID, PurchaseID: p.ID, Amount: p.Amount}, nil
}

func (u *sessionUC) Status(ctx context.Context, sessionID string) (*model.Purchase, error) {
	return u.purchases.FindBySessionID(ctx, sessionID)
}
