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

// PostgresAmbassadorRepo implements repository.AmbassadorRepository.
type PostgresAmbassadorRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresAmbassadorRepo(pool *pgxpool.Pool) *PostgresAmbassadorRepo {
	return &PostgresAmbassadorRepo{pool: pool}
}

var _ repository.AmbassadorRepository = (*PostgresAmbassadorRepo)(nil)

func (r *PostgresAmbassadorRepo) Create(ctx context.Context, a *model.Ambassador) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	const sql = `
INSERT INTO ambassadors (id, user_id, name, email, referral_code, balance, created_at)
VALUES ($1,$2,$3,NULLIF($4,''),$5,$6,$7);
`
	_, err := r.pool.Exec(ctx, sql,
		a.ID, a.UserID, a.Name, a.Email, a.ReferralCode, a.Balance, a.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("postgres Create ambassador: %w", err)
	}
	return nil
}

const ambassadorColumns = `id, user_id, name, COALESCE(email,''), referral_code, balance, created_at`

func (r *PostgresAmbassadorRepo) FindByReferralCode(ctx context.Context, code string) (*model.Ambassador, error) {
	return r.findOne(ctx, `SELECT `+ambassadorColumns+` FROM ambassadors WHERE referral_code = $1;`, code)
}

func (r *PostgresAmbassadorRepo) FindByUserID(ctx context.Context, userID string) (*model.Ambassador, error) {
	return r.findOne(ctx, `SELECT `+ambassadorColumns+` FROM ambassadors WHERE user_id = $1;`, userID)
}

func (r *PostgresAmbassadorRepo) findOne(ctx context.Context, sql, arg string) (*model.Ambassador, error) {
	var a model.Ambassador
	row := r.pool.QueryRow(ctx, sql, arg)
	if err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Email, &a.ReferralCode, &a.Balance, &a.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("postgres find ambassador scan: %w", err)
	}
	return &a, nil
}

func (r *PostgresAmbassadorRepo) ListAll(ctx context.Context) ([]*model.Ambassador, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+ambassadorColumns+` FROM ambassadors ORDER BY created_at DESC;`)
	if err != nil {
		return nil, fmt.Errorf("postgres ListAll ambassadors: %w", err)
	}
	defer rows.Close()
	var out []*model.Ambassador
	for rows.Next() {
		var a model.Ambassador
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Email, &a.ReferralCode, &a.Balance, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
