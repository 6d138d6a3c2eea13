package adapter

import "context"

// HotspotAccount describes a time-limited account to provision on the router.
type HotspotAccount struct {
	Username    string
	Password    string
	LimitUptime string // "HH:MM:SS"; hours are total hours and may exceed 24
	Comment     string // e.g. "purchase_id:<uuid>" for operator traceability
}

// RouterClient is the hex port for the router's remote management API.
type RouterClient interface {
	// CreateHotspotUser provisions the account. The call is not idempotent on
	// the router side; callers must guard against duplicate invocations.
	CreateHotspotUser(ctx context.Context, acc HotspotAccount) error
}
