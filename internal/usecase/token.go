// File: internal/usecase/token.go
package usecase

import (
	"fmt"
	"math/rand"
	"time"
)

const alnum = "abcdefghijklmnopqrstuvwxyz0123456789"

// randomString returns n random lowercase alphanumeric characters. Not
// cryptographically strong; these values are correlation handles and hotspot
// passwords with a lifetime of hours, not long-lived secrets.
func randomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alnum[rand.Intn(len(alnum))]
	}
	return string(b)
}

// newSessionID mints a purchase session token: millisecond timestamp plus a
// short random suffix. Uniqueness is probabilistic and ultimately enforced by
// the database's unique index on session_id.
func newSessionID() string {
	return fmt.Sprintf("sess_%d%s", time.Now().UnixMilli(), randomString(6))
}

// newHotspotUsername mints a router account name, e.g. u17561234567894231.
func newHotspotUsername() string {
	return fmt.Sprintf("u%d%d", time.Now().UnixMilli(), rand.Intn(9000))
}

// FormatLimitUptime renders a duration in seconds as the router's HH:MM:SS
// uptime limit. Hours are total hours, not clock hours: 90000s -> "25:00:00".
func FormatLimitUptime(durationSeconds int64) string {
	hours := durationSeconds / 3600
	minutes := (durationSeconds % 3600) / 60
	seconds := durationSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
