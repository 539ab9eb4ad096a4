package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"betbroker/database"
	"betbroker/models"
	"betbroker/service"
)

// BetRepository implements the BetRepository interface
type BetRepository struct {
	q queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) *BetRepository {
	return &BetRepository{q: db.Pool}
}

// newBetRepositoryWithTx creates a repository bound to a transaction
func newBetRepositoryWithTx(tx queryable) *BetRepository {
	return &BetRepository{q: tx}
}

const betColumns = `id, user_id, external_bet_id, amount, status, win_amount, created_at, completed_at`

// Create inserts a new bet. A unique violation on external_bet_id is
// surfaced as service.ErrDuplicateBet, never as a generic failure.
func (r *BetRepository) Create(ctx context.Context, bet *models.Bet) error {
	query := `
		INSERT INTO bets (user_id, external_bet_id, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		bet.UserID,
		bet.ExternalBetID,
		bet.Amount,
		bet.Status,
	).Scan(&bet.ID, &bet.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return service.ErrDuplicateBet
		}
		return fmt.Errorf("failed to create bet for user %d: %w", bet.UserID, err)
	}

	return nil
}

// GetByID retrieves a user's bet by its internal ID. Returns nil when absent.
func (r *BetRepository) GetByID(ctx context.Context, id, userID int64) (*models.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE id = $1 AND user_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, id, userID))
}

// GetByExternalID retrieves a user's bet by the upstream bet id.
// Returns nil when absent.
func (r *BetRepository) GetByExternalID(ctx context.Context, externalBetID string, userID int64) (*models.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE external_bet_id = $1 AND user_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, externalBetID, userID))
}

// GetByExternalIDForUpdate locks the bet row for the duration of the
// surrounding transaction. Two settlements racing on the same bet
// serialize here; the loser observes the terminal status.
func (r *BetRepository) GetByExternalIDForUpdate(ctx context.Context, externalBetID string, userID int64) (*models.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE external_bet_id = $1 AND user_id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, externalBetID, userID))
}

// ListByUser returns a user's bets, most recent first
func (r *BetRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets for user %d: %w", userID, err)
	}
	defer rows.Close()

	var bets []*models.Bet
	for rows.Next() {
		var bet models.Bet
		if err := rows.Scan(
			&bet.ID,
			&bet.UserID,
			&bet.ExternalBetID,
			&bet.Amount,
			&bet.Status,
			&bet.WinAmount,
			&bet.CreatedAt,
			&bet.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, &bet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bets: %w", err)
	}

	return bets, nil
}

// MarkSettled applies the terminal state to a pending bet exactly once
func (r *BetRepository) MarkSettled(ctx context.Context, id int64, status models.BetStatus, winAmount int64, completedAt time.Time) error {
	query := `
		UPDATE bets
		SET status = $1, win_amount = $2, completed_at = $3
		WHERE id = $4 AND status = 'pending'
	`

	result, err := r.q.Exec(ctx, query, status, winAmount, completedAt, id)
	if err != nil {
		return fmt.Errorf("failed to settle bet %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("bet %d is not pending", id)
	}

	return nil
}

func (r *BetRepository) scanOne(row pgx.Row) (*models.Bet, error) {
	var bet models.Bet
	err := row.Scan(
		&bet.ID,
		&bet.UserID,
		&bet.ExternalBetID,
		&bet.Amount,
		&bet.Status,
		&bet.WinAmount,
		&bet.CreatedAt,
		&bet.CompletedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	return &bet, nil
}
