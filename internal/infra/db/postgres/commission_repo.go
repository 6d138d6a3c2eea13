package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"hotspot-voucher-platform/internal/domain/ports/repository"
)

// PostgresCommissionRepo calls the add_commission_to_ambassador database
// function. The function computes the commission from the configured rate,
// increments the ambassador balance and writes the audit row in one
// transaction on the database side.
type PostgresCommissionRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresCommissionRepo(pool *pgxpool.Pool) *PostgresCommissionRepo {
	return &PostgresCommissionRepo{pool: pool}
}

var _ repository.CommissionRepository = (*PostgresCommissionRepo)(nil)

func (r *PostgresCommissionRepo) Add(ctx context.Context, ambassadorID, purchaseID string, purchaseAmount int64, customerUserID string) error {
	const sql = `SELECT add_commission_to_ambassador($1,$2,$3,$4);`
	if _, err := r.pool.Exec(ctx, sql, ambassadorID, purchaseID, purchaseAmount, customerUserID); err != nil {
		return fmt.Errorf("postgres add_commission_to_ambassador: %w", err)
	}
	return nil
}
