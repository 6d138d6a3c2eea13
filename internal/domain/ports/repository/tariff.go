package repository

import (
	"context"

	"hotspot-voucher-platform/internal/domain/model"
)

// TariffRepository is the port for tariff persistence.
type TariffRepository interface {
	Create(ctx context.Context, t *model.Tariff) error
	Update(ctx context.Context, t *model.Tariff) error
	FindByID(ctx context.Context, id string) (*model.Tariff, error)
	// ListAll returns tariffs ordered by price ascending.
	ListAll(ctx context.Context) ([]*model.Tariff, error)
}
