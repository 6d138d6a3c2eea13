package repository

import (
	"context"

	"hotspot-voucher-platform/internal/domain/model"
)

// SettingRepository is the port for key-value settings.
type SettingRepository interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	// GetMany returns the settings that exist among keys; missing keys are
	// simply absent from the result.
	GetMany(ctx context.Context, keys []string) (map[string]string, error)
	// Upsert writes key=value, last write wins.
	Upsert(ctx context.Context, s *model.Setting) error
}
