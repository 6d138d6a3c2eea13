package repository

import (
	"context"

	"hotspot-voucher-platform/internal/domain/model"
)

// PurchaseRepository is the port for purchase persistence. Purchases are
// append-and-update only; nothing ever deletes a row.
type PurchaseRepository interface {
	Create(ctx context.Context, p *model.Purchase) error
	FindBySessionID(ctx context.Context, sessionID string) (*model.Purchase, error)
	// ApplyDiscount persists the discounted amount and the referring
	// ambassador. It must refuse to overwrite an existing referral
	// (domain.ErrDiscountApplied) so a code cannot be stacked.
	ApplyDiscount(ctx context.Context, purchaseID string, newAmount int64, referralID string) error
	// CompletePending transitions pending -> completed and records the issued
	// credentials in one guarded update. It reports false when the purchase
	// was not pending anymore, which callers treat as "already processed".
	CompletePending(ctx context.Context, purchaseID, username, password string) (bool, error)
}
