package repository

import "context"

// CommissionRepository invokes the database-side commission routine. The
// calculation itself (rate lookup, balance increment, audit row) lives in a
// stored function owned by the database, not in this service.
type CommissionRepository interface {
	Add(ctx context.Context, ambassadorID, purchaseID string, purchaseAmount int64, customerUserID string) error
}
