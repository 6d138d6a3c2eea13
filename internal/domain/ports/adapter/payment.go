package adapter

import "context"

// VerifiedPayment is a transaction outcome the provider confirmed server-side,
// as opposed to whatever the webhook payload claims.
type VerifiedPayment struct {
	SessionID string // our session token, carried as the provider tx reference
	Amount    int64
	Currency  string
}

// TransactionVerifier re-fetches a transaction from the payment provider's
// verification endpoint. Providers without such an endpoint (Campay) have no
// verifier; their webhook payload is taken at face value.
type TransactionVerifier interface {
	Name() string
	// VerifyTransaction returns domain.ErrVerificationFailed when the provider
	// does not independently confirm the transaction as successful.
	VerifyTransaction(ctx context.Context, txID string) (*VerifiedPayment, error)
}
