package models

import "time"

// TransactionType represents the type of ledger entry
type TransactionType string

const (
	TransactionTypeBetPlace TransactionType = "bet_place"
	TransactionTypeBetWin   TransactionType = "bet_win"
	TransactionTypeBetLose  TransactionType = "bet_lose"
)

// Transaction is an append-only ledger entry. For a given user the
// entries ordered by created_at form a chain: each balance_after
// equals the next entry's balance_before, and the last entry's
// balance_after equals the current Balance row.
type Transaction struct {
	ID            int64           `db:"id"`
	UserID        int64           `db:"user_id"`
	BetID         *int64          `db:"bet_id"`
	Type          TransactionType `db:"type"`
	Amount        int64           `db:"amount"`
	BalanceBefore int64           `db:"balance_before"`
	BalanceAfter  int64           `db:"balance_after"`
	Description   string          `db:"description"`
	CreatedAt     time.Time       `db:"created_at"`
}
