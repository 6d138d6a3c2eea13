package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"hotspot-voucher-platform/internal/domain"
	"hotspot-voucher-platform/internal/domain/model"
	"hotspot-voucher-platform/internal/domain/ports/repository"
)

// PostgresTariffRepo implements repository.TariffRepository using Postgres.
type PostgresTariffRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresTariffRepo(pool *pgxpool.Pool) *PostgresTariffRepo {
	return &PostgresTariffRepo{pool: pool}
}

var _ repository.TariffRepository = (*PostgresTariffRepo)(nil)

func (r *PostgresTariffRepo) Create(ctx context.Context, t *model.Tariff) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	const sql = `
INSERT INTO tariffs (id, name, data_bytes, duration_seconds, price_cfa, speed_limit, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7);
`
	_, err := r.pool.Exec(ctx, sql,
		t.ID, t.Name, t.DataBytes, t.DurationSeconds, t.PriceCFA, t.SpeedLimit, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("postgres Create tariff: %w", err)
	}
	return nil
}

func (r *PostgresTariffRepo) Update(ctx context.Context, t *model.Tariff) error {
	const sql = `
UPDATE tariffs
SET name=$2, data_bytes=$3, duration_seconds=$4, price_cfa=$5, speed_limit=$6
WHERE id=$1;
`
	tag, err := r.pool.Exec(ctx, sql,
		t.ID, t.Name, t.DataBytes, t.DurationSeconds, t.PriceCFA, t.SpeedLimit)
	if err != nil {
		return fmt.Errorf("postgres Update tariff: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresTariffRepo) FindByID(ctx context.Context, id string) (*model.Tariff, error) {
	const sql = `
SELECT id, name, data_bytes, duration_seconds, price_cfa, speed_limit, created_at
FROM tariffs
WHERE id = $1;
`
	var t model.Tariff
	row := r.pool.QueryRow(ctx, sql, id)
	if err := row.Scan(&t.ID, &t.Name, &t.DataBytes, &t.DurationSeconds, &t.PriceCFA, &t.SpeedLimit, &t.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("postgres FindByID tariff scan: %w", err)
	}
	return &t, nil
}

func (r *PostgresTariffRepo) ListAll(ctx context.Context) ([]*model.Tariff, error) {
	const sql = `
SELECT id, name, data_bytes, duration_seconds, price_cfa, speed_limit, created_at
FROM tariffs
ORDER BY price_cfa ASC;
`
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("postgres ListAll tariffs: %w", err)
	}
	defer rows.Close()
	var out []*model.Tariff
	for rows.Next() {
		var t model.Tariff
		if err := rows.Scan(&t.ID, &t.Name, &t.DataBytes, &t.DurationSeconds, &t.PriceCFA, &t.SpeedLimit, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
