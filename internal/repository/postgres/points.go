package postgres

import (
	"context"
	"fmt"

	"github.com/LuBeneventi/lvlupreact-2/internal/domain"
)

// PointsRepository implements domain.PointsRepository as an append-only
// ledger: balances are sums over entries, never stored counters.
type PointsRepository struct {
	db DBTX
}

// NewPointsRepository creates a new PointsRepository
func NewPointsRepository(db DBTX) *PointsRepository {
	return &PointsRepository{db: db}
}

// Balance returns the user's current point balance.
func (r *PointsRepository) Balance(ctx context.Context, userID string) (int64, error) {
	var balance int64

	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)
		 FROM point_transactions
		 WHERE user_id = $1`,
		userID,
	).Scan(&balance)

	if err != nil {
		return 0, fmt.Errorf("repository: failed to get balance for user %s: %w", userID, err)
	}

	return balance, nil
}

// Accrue appends a positive ledger entry outside any order settlement
// (registration and referral bonuses).
func (r *PointsRepository) Accrue(ctx context.Context, userID, reference string, points int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO point_transactions (user_id, reference, amount, type)
		 VALUES ($1, $2, $3, $4)`,
		userID, reference, points, domain.TransactionTypeAccrual,
	)

	if err != nil {
		return fmt.Errorf("repository: failed to accrue %d points for user %s: %w", points, userID, err)
	}

	return nil
}

// SettleWithLock applies an order's point movement atomically: it takes a
// per-user advisory lock, checks that the resulting balance stays
// non-negative, then appends the accrual and redemption entries in one
// database transaction. Returns ErrInsufficientPoints when the balance
// would go negative; nothing is written in that case.
func (r *PointsRepository) SettleWithLock(ctx context.Context, userID, orderID string, earned, spent int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: failed to begin settlement for user %s: %w", userID, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	// Advisory lock serialises concurrent settlements for the same user,
	// closing the read-modify-write race on the balance.
	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userID); err != nil {
		return fmt.Errorf("repository: failed to acquire lock for user %s: %w", userID, err)
	}

	// Idempotency: a settlement retried by the worker after a partially
	// failed attempt must not apply the movement twice.
	var applied bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM point_transactions WHERE user_id = $1 AND reference = $2
		 )`,
		userID, orderID,
	).Scan(&applied)

	if err != nil {
		return fmt.Errorf("repository: failed to check settlement of order %s: %w", orderID, err)
	}
	if applied {
		return tx.Commit(ctx)
	}

	var balance int64
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)
		 FROM point_transactions
		 WHERE user_id = $1`,
		userID,
	).Scan(&balance)

	if err != nil {
		return fmt.Errorf("repository: failed to get balance for user %s: %w", userID, err)
	}

	if balance+earned-spent < 0 {
		return ErrInsufficientPoints
	}

	if earned > 0 {
		_, err = tx.Exec(ctx,
			`INSERT INTO point_transactions (user_id, reference, amount, type)
			 VALUES ($1, $2, $3, $4)`,
			userID, orderID, earned, domain.TransactionTypeAccrual,
		)
		if err != nil {
			return fmt.Errorf("repository: failed to insert accrual for order %s: %w", orderID, err)
		}
	}

	if spent > 0 {
		_, err = tx.Exec(ctx,
			`INSERT INTO point_transactions (user_id, reference, amount, type)
			 VALUES ($1, $2, $3, $4)`,
			userID, orderID, -spent, domain.TransactionTypeRedemption,
		)
		if err != nil {
			return fmt.Errorf("repository: failed to insert redemption for order %s: %w", orderID, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit settlement for order %s: %w", orderID, err)
	}

	return nil
}

// GetRedemptions returns the user's redemption history, newest first.
func (r *PointsRepository) GetRedemptions(ctx context.Context, userID string) ([]*domain.PointTransaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, reference, ABS(amount) as amount, type, created_at
		 FROM point_transactions
		 WHERE user_id = $1 AND type = $2
		 ORDER BY created_at DESC`,
		userID, domain.TransactionTypeRedemption,
	)

	if err != nil {
		return nil, fmt.Errorf("repository: failed to get redemptions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var transactions []*domain.PointTransaction
	for rows.Next() {
		t := &domain.PointTransaction{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.Reference, &t.Amount, &t.Type, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("repository: failed to scan point transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating redemptions: %w", err)
	}

	return transactions, nil
}
