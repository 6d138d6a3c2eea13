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

// PostgresPurchaseRepo implements repository.PurchaseRepository using Postgres.
// DB columns: id TEXT PK, tariff_id TEXT, user_id TEXT NULL, session_id TEXT
// UNIQUE, state TEXT, amount BIGINT, referral_id TEXT NULL, mikrotik_user TEXT
// NULL, mikrotik_pass TEXT NULL, created_at TIMESTAMPTZ.
type PostgresPurchaseRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresPurchaseRepo(pool *pgxpool.Pool) *PostgresPurchaseRepo {
	return &PostgresPurchaseRepo{pool: pool}
}

var _ repository.PurchaseRepository = (*PostgresPurchaseRepo)(nil)

func (r *PostgresPurchaseRepo) Create(ctx context.Context, p *model.Purchase) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	const sql = `
INSERT INTO purchases (id, tariff_id, user_id, session_id, state, amount, referral_id, mikrotik_user, mikrotik_pass, created_at)
VALUES ($1,$2,NULLIF($3,''),$4,$5,$6,NULLIF($7,''),NULLIF($8,''),NULLIF($9,''),$10);
`
	_, err := r.pool.Exec(ctx, sql,
		p.ID, p.TariffID, p.UserID, p.SessionID, string(p.State), p.Amount,
		p.ReferralID, p.MikrotikUser, p.MikrotikPass, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// session_id collision; tokens are probabilistic, this is rare
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("postgres Create purchase: %w", err)
	}
	return nil
}

func (r *PostgresPurchaseRepo) FindBySessionID(ctx context.Context, sessionID string) (*model.Purchase, error) {
	const sql = `
SELECT id, tariff_id, COALESCE(user_id,''), session_id, state, amount,
       COALESCE(referral_id,''), COALESCE(mikrotik_user,''), COALESCE(mikrotik_pass,''), created_at
FROM purchases
WHERE session_id = $1;
`
	var (
		p     model.Purchase
		state string
	)
	row := r.pool.QueryRow(ctx, sql, sessionID)
	if err := row.Scan(&p.ID, &p.TariffID, &p.UserID, &p.SessionID, &state, &p.Amount,
		&p.ReferralID, &p.MikrotikUser, &p.MikrotikPass, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("postgres FindBySessionID purchase scan: %w", err)
	}
	p.State = model.PurchaseState(state)
	return &p, nil
}

func (r *PostgresPurchaseRepo) ApplyDiscount(ctx context.Context, purchaseID string, newAmount int64, referralID string) error {
	// referral_id IS NULL guards against stacking the discount: the second
	// application matches zero rows.
	const sql = `
UPDATE purchases
SET amount = $2, referral_id = $3
WHERE id = $1 AND referral_id IS NULL;
`
	tag, err := r.pool.Exec(ctx, sql, purchaseID, newAmount, referralID)
	if err != nil {
		return fmt.Errorf("postgres ApplyDiscount: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDiscountApplied
	}
	return nil
}

func (r *PostgresPurchaseRepo) CompletePending(ctx context.Context, purchaseID, username, password string) (bool, error) {
	// Compare-and-swap on state so a redelivered webhook that lost the race
	// cannot complete the purchase a second time.
	const sql = `
UPDATE purchases
SET state = 'completed', mikrotik_user = $2, mikrotik_pass = $3
WHERE id = $1 AND state = 'pending';
`
	tag, err := r.pool.Exec(ctx, sql, purchaseID, username, password)
	if err != nil {
		return false, fmt.Errorf("postgres CompletePending: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
