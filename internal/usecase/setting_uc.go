// File: internal/usecase/setting_uc.go
package usecase

import (
	"context"
	"errors"

	"hotspot-voucher-platform/internal/domain"
	"hotspot-voucher-platform/internal/domain/model"
	"hotspot-voucher-platform/internal/domain/ports/repository"
)

// Compile-time check
var _ SettingUseCase = (*settingUC)(nil)

// PaymentProvider describes one enabled checkout option for the portal UI.
type PaymentProvider struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PublicKey string `json:"publicKey,omitempty"`
}

type SettingUseCase interface {
	// Get resolves key with the portal's legacy fallback chain: the key
	// itself, then the "columns" row, then the hardcoded "2".
	Get(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) (*model.Setting, error)
	// Providers lists checkout options enabled via settings toggles.
	Providers(ctx context.Context) ([]PaymentProvider, error)
}

type settingUC struct {
	settings repository.SettingRepository
}

func NewSettingUseCase(settings repository.SettingRepository) *settingUC {
	return &settingUC{settings: settings}
}

func (u *settingUC) Get(ctx context.Context, key string) (string, error) {
	s, err := u.settings.Get(ctx, key)
	if err == nil {
		return s.Value, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}
	fallback, err := u.settings.Get(ctx, model.SettingColumns)
	if err == nil {
		return fallback.Value, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}
	return model.DefaultColumns, nil
}

func (u *settingUC) Save(ctx context.Context, key, value string) (*model.Setting, error) {
	if key == "" {
		return nil, domain.ErrInvalidArgument
	}
	s := &model.Setting{Key: key, Value: value}
	if err := u.settings.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (u *settingUC) Providers(ctx context.Context) ([]PaymentProvider, error) {
	values, err := u.settings.GetMany(ctx, []string{
		model.SettingCampayEnabled,
		model.SettingFlutterwaveEnabled,
		model.SettingFlutterwavePublicKey,
	})
	if err != nil {
		return nil, err
	}

	providers := []PaymentProvider{}
	if values[model.SettingCampayEnabled] == "true" {
		providers = append(providers, PaymentProvider{
			ID:   "campay",
			Name: "Campay (Mobile Money)",
		})
	}
	if values[model.SettingFlutterwaveEnabled] == "true" && values[model.SettingFlutterwavePublicKey] != "" {
		providers = append(providers, PaymentProvider{
			ID:        "flutterwave",
			Name:      "Flutterwave (Carte & Mobile Money)",
			PublicKey: values[model.SettingFlutterwavePublicKey],
		})
	}
	return providers, nil
}
