package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"betbroker/database"
	"betbroker/models"
)

// BalanceRepository implements the BalanceRepository interface
type BalanceRepository struct {
	q queryable
}

// NewBalanceRepository creates a new balance repository
func NewBalanceRepository(db *database.DB) *BalanceRepository {
	return &BalanceRepository{q: db.Pool}
}

// newBalanceRepositoryWithTx creates a repository bound to a transaction
func newBalanceRepositoryWithTx(tx queryable) *BalanceRepository {
	return &BalanceRepository{q: tx}
}

// GetByUserID returns the user's balance row, or nil when absent
func (r *BalanceRepository) GetByUserID(ctx context.Context, userID int64) (*models.Balance, error) {
	query := `
		SELECT user_id, balance, external_balance, last_checked_at
		FROM user_balances
		WHERE user_id = $1
	`
	return r.scanOne(r.q.QueryRow(ctx, query, userID))
}

// GetForUpdate locks the balance row for the duration of the
// surrounding transaction, or returns nil when the row does not exist.
func (r *BalanceRepository) GetForUpdate(ctx context.Context, userID int64) (*models.Balance, error) {
	query := `
		SELECT user_id, balance, external_balance, last_checked_at
		FROM user_balances
		WHERE user_id = $1
		FOR UPDATE
	`
	return r.scanOne(r.q.QueryRow(ctx, query, userID))
}

// Upsert creates or replaces the user's balance row
func (r *BalanceRepository) Upsert(ctx context.Context, balance *models.Balance) error {
	query := `
		INSERT INTO user_balances (user_id, balance, external_balance, last_checked_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = EXCLUDED.balance,
		    external_balance = EXCLUDED.external_balance,
		    last_checked_at = EXCLUDED.last_checked_at
	`

	if _, err := r.q.Exec(ctx, query,
		balance.UserID,
		balance.Balance,
		balance.ExternalBalance,
		balance.LastCheckedAt,
	); err != nil {
		return fmt.Errorf("failed to upsert balance for user %d: %w", balance.UserID, err)
	}

	return nil
}

func (r *BalanceRepository) scanOne(row pgx.Row) (*models.Balance, error) {
	var balance models.Balance
	err := row.Scan(
		&balance.UserID,
		&balance.Balance,
		&balance.ExternalBalance,
		&balance.LastCheckedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return &balance, nil
}
