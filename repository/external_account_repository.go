package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"betbroker/database"
	"betbroker/models"
)

// ExternalAccountRepository implements the ExternalAccountRepository interface
type ExternalAccountRepository struct {
	q queryable
}

// NewExternalAccountRepository creates a new external account repository
func NewExternalAccountRepository(db *database.DB) *ExternalAccountRepository {
	return &ExternalAccountRepository{q: db.Pool}
}

// newExternalAccountRepositoryWithTx creates a repository bound to a transaction
func newExternalAccountRepositoryWithTx(tx queryable) *ExternalAccountRepository {
	return &ExternalAccountRepository{q: tx}
}

// GetActiveByUserID retrieves the user's active external account.
// Returns nil when the user has no active account.
func (r *ExternalAccountRepository) GetActiveByUserID(ctx context.Context, userID int64) (*models.ExternalAccount, error) {
	query := `
		SELECT id, user_id, external_user_id, external_secret_key, is_active, created_at
		FROM external_api_accounts
		WHERE user_id = $1 AND is_active
	`

	var account models.ExternalAccount
	err := r.q.QueryRow(ctx, query, userID).Scan(
		&account.ID,
		&account.UserID,
		&account.ExternalUserID,
		&account.SecretKey,
		&account.IsActive,
		&account.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active external account for user %d: %w", userID, err)
	}

	return &account, nil
}
