package payment

import (
	"context"
	"sync"

	"hotspot-voucher-platform/internal/domain"
	"hotspot-voucher-platform/internal/domain/ports/adapter"
)

var _ adapter.TransactionVerifier = (*NoopVerifier)(nil)

// NoopVerifier is a simple in-memory verifier to use in tests.
type NoopVerifier struct {
	mu  sync.Mutex
	txs map[string]adapter.VerifiedPayment // txID -> confirmed outcome
}

func NewNoopVerifier() *NoopVerifier {
	return &NoopVerifier{txs: make(map[string]adapter.VerifiedPayment)}
}

func (n *NoopVerifier) Name() string { return "noop" }

// Confirm registers txID as provider-confirmed for later verification.
func (n *NoopVerifier) Confirm(txID string, vp adapter.VerifiedPayment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.txs[txID] = vp
}

func (n *NoopVerifier) VerifyTransaction(ctx context.Context, txID string) (*adapter.VerifiedPayment, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	vp, ok := n.txs[txID]
	if !ok {
		return nil, domain.ErrVerificationFailed
	}
	cp := vp
	return &cp, nil
}
