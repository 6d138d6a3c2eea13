// File: internal/infra/logging/logging.go
package logging

import (
	"context"
	"os"
	"strings"
	"time"

	"hotspot-voucher-platform/internal/config"

	"github.com/rs/zerolog"
)

// New creates a zerolog logger configured from config.
// Supports "trace" | "debug" | "info" | "warn" | "error" levels
// and "json" | "console" formats. Sampling can be enabled to reduce noise in prod.
func New(cfg config.LogConfig, dev bool) *zerolog.Logger {
	level, _ := zerolog.ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	var base zerolog.Logger
	if strings.ToLower(cfg.Format) == "console" || dev {
		out := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		base = zerolog.New(out).With().Timestamp().Logger()
	} else {
		base = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	if cfg.Sampling && !dev {
		// Keep first 100, then 1 every 100 thereafter.
		sampled := base.Sample(&zerolog.BasicSampler{N: 100})
		return &sampled
	}
	return &base
}

// Context field helpers: webhook deliveries and purchase sessions get tagged
// so one sale can be traced across handler, router call and commission RPC.
type ctxKey string

const (
	ctxDeliveryID ctxKey = "delivery_id"
	ctxSessionID  ctxKey = "session_id"
	ctxPurchaseID ctxKey = "purchase_id"
)

func With(ctx context.Context, base *zerolog.Logger) *zerolog.Logger {
	l := base.With()
	if v := ctx.Value(ctxDeliveryID); v != nil {
		l = l.Str("delivery_id", v.(string))
	}
	if v := ctx.Value(ctxSessionID); v != nil {
		l = l.Str("session_id", v.(string))
	}
	if v := ctx.Value(ctxPurchaseID); v != nil {
		l = l.Str("purchase_id", v.(string))
	}
	logger := l.Logger()
	return &logger
}

// Redact hides credentials in non-dev logs; keeps a short preview.
func Redact(s string, dev bool) string {
	if dev {
		return s
	}
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "..." + s[len(s)-2:]
}

func WithDeliveryID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxDeliveryID, id)
}
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxSessionID, id)
}
func WithPurchaseID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxPurchaseID, id)
}
