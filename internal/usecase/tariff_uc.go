// File: internal/usecase/tariff_uc.go
package usecase

import (
	"context"

	"github.com/google/uuid"

	"hotspot-voucher-platform/internal/domain"
	"hotspot-voucher-platform/internal/domain/model"
	"hotspot-voucher-platform/internal/domain/ports/repository"
)

// Compile-time check
var _ TariffUseCase = (*tariffUC)(nil)

type TariffUseCase interface {
	Create(ctx context.Context, name string, dataBytes, durationSeconds, priceCFA int64, speedLimit string) (*model.Tariff, error)
	Update(ctx context.Context, id, name string, dataBytes, durationSeconds, priceCFA int64, speedLimit string) (*model.Tariff, error)
	// List returns all tariffs, cheapest first.
	List(ctx context.Context) ([]*model.Tariff, error)
}

type tariffUC struct {
	tariffs repository.TariffRepository
}

func NewTariffUseCase(tariffs repository.TariffRepository) *tariffUC {
	return &tariffUC{tariffs: tariffs}
}

func (u *tariffUC) Create(ctx context.Context, name string, dataBytes, durationSeconds, priceCFA int64, speedLimit string) (*model.Tariff, error) {
	if name == "" || durationSeconds <= 0 || priceCFA <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	t := &model.Tariff{
		ID:              uuid.NewString(),
		Name:            name,
		DataBytes:       dataBytes,
		DurationSeconds: durationSeconds,
		PriceCFA:        priceCFA,
		SpeedLimit:      speedLimit,
	}
	if err := u.tariffs.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (u *tariffUC) Update(ctx context.Context, id, name string, dataBytes, durationSeconds, priceCFA int64, speedLimit string) (*model.Tariff, error) {
	if id == "" || name == "" || durationSeconds <= 0 || priceCFA <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	t := &model.Tariff{
		ID:              id,
		Name:            name,
		DataBytes:       dataBytes,
		DurationSeconds: durationSeconds,
		PriceCFA:        priceCFA,
		SpeedLimit:      speedLimit,
	}
	if err := u.tariffs.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (u *tariffUC) List(ctx context.Context) ([]*model.Tariff, error) {
	return u.tariffs.ListAll(ctx)
}
