package notify

import (
	"context"

	"hotspot-voucher-platform/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

var (
	_ adapter.Notifier   = (*NoopNotifier)(nil)
	_ adapter.OpsAlerter = (*NoopAlerter)(nil)
)

// NoopNotifier stands in for the user push/email channel, which is not built
// yet. It only logs so completed purchases show up somewhere.
// TODO: wire Firebase Cloud Messaging once the portal ships its service worker.
type NoopNotifier struct {
	log *zerolog.Logger
}

func NewNoopNotifier(log *zerolog.Logger) *NoopNotifier {
	return &NoopNotifier{log: log}
}

func (n *NoopNotifier) NotifyUser(ctx context.Context, userID, title, body string) error {
	n.log.Info().Str("user_id", userID).Str("title", title).Msg("user notification (noop)")
	return nil
}

// NoopAlerter drops ops alerts when no Telegram token is configured.
type NoopAlerter struct{}

func (NoopAlerter) Alert(ctx context.Context, message string) error { return nil }
