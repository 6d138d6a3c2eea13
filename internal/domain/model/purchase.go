package model

import "time"

type PurchaseState string

const (
	PurchaseStatePending   PurchaseState = "pending"   // session created; awaiting gateway webhook
	PurchaseStateCompleted PurchaseState = "completed" // paid, router account provisioned (terminal)
)

// Purchase tracks one voucher sale from session creation to provisioning.
// The session ID is the only correlation handle shared with the client and
// the payment gateway (it travels as the gateway transaction reference).
// Rows are never deleted; a purchase that never gets paid stays pending.
type Purchase struct {
	ID        string        `json:"id"`
	TariffID  string        `json:"tariff_id"`
	UserID    string        `json:"user_id,omitempty"` // empty for anonymous captive-portal buyers
	SessionID string        `json:"session_id"`        // unique
	State     PurchaseState `json:"state"`
	// Amount is the payable amount in CFA francs. It starts at the tariff
	// price and is lowered at most once by a referral discount.
	Amount     int64  `json:"amount"`
	ReferralID string `json:"referral_id,omitempty"` // ambassador credited on completion
	// Credentials issued on completion.
	MikrotikUser string    `json:"mikrotik_user,omitempty"`
	MikrotikPass string    `json:"mikrotik_pass,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
