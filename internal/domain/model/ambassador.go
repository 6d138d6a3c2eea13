package model

import "time"

// Ambassador is an affiliate who shares a referral code. Customers entering
// the code get a discount; the ambassador's balance grows by a commission on
// each completed purchase they referred.
type Ambassador struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"` // owning account in the external identity provider
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	ReferralCode string    `json:"referral_code"` // unique
	Balance      int64     `json:"balance"`       // accumulated commission in CFA francs
	CreatedAt    time.Time `json:"created_at"`
}

// AmbassadorStats carries dashboard counters. Signups and clicks are not
// tracked yet; the API serves fixed values until tracking lands.
type AmbassadorStats struct {
	Signups int `json:"signups"`
	Clicks  int `json:"clicks"`
}
