package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"hotspot-voucher-platform/internal/domain"
	"hotspot-voucher-platform/internal/domain/model"
	"hotspot-voucher-platform/internal/domain/ports/repository"
	red "hotspot-voucher-platform/internal/infra/redis"
)

// PostgresSettingRepo implements repository.SettingRepository with an
// optional read-through Redis cache in front of single-key reads.
type PostgresSettingRepo struct {
	pool  *pgxpool.Pool
	cache *red.SettingCache // nil disables caching
}

func NewPostgresSettingRepo(pool *pgxpool.Pool, cache *red.SettingCache) *PostgresSettingRepo {
	return &PostgresSettingRepo{pool: pool, cache: cache}
}

var _ repository.SettingRepository = (*PostgresSettingRepo)(nil)

func (r *PostgresSettingRepo) Get(ctx context.Context, key string) (*model.Setting, error) {
	if r.cache != nil {
		if v, ok := r.cache.Get(ctx, key); ok {
			return &model.Setting{Key: key, Value: v}, nil
		}
	}
	const sql = `SELECT value FROM settings WHERE key = $1;`
	var value string
	if err := r.pool.QueryRow(ctx, sql, key).Scan(&value); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("postgres Get setting: %w", err)
	}
	if r.cache != nil {
		r.cache.Put(ctx, key, value)
	}
	return &model.Setting{Key: key, Value: value}, nil
}

func (r *PostgresSettingRepo) GetMany(ctx context.Context, keys []string) (map[string]string, error) {
	const sql = `SELECT key, value FROM settings WHERE key = ANY($1);`
	rows, err := r.pool.Query(ctx, sql, keys)
	if err != nil {
		return nil, fmt.Errorf("postgres GetMany settings: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string, len(keys))
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (r *PostgresSettingRepo) Upsert(ctx context.Context, s *model.Setting) error {
	const sql = `
INSERT INTO settings (key, value)
VALUES ($1,$2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;
`
	if _, err := r.pool.Exec(ctx, sql, s.Key, s.Value); err != nil {
		return fmt.Errorf("postgres Upsert setting: %w", err)
	}
	if r.cache != nil {
		r.cache.Invalidate(ctx, s.Key)
	}
	return nil
}
