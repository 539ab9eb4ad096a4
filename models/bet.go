package models

import "time"

// BetStatus represents the lifecycle state of a bet
type BetStatus string

const (
	BetStatusPending   BetStatus = "pending"
	BetStatusCompleted BetStatus = "completed"
	BetStatusLost      BetStatus = "lost"
)

// Terminal reports whether the status is final. Settled bets are never
// mutated again.
func (s BetStatus) Terminal() bool {
	return s == BetStatusCompleted || s == BetStatusLost
}

// Bet represents a brokered bet in the database
type Bet struct {
	ID            int64      `db:"id"`
	UserID        int64      `db:"user_id"`
	ExternalBetID string     `db:"external_bet_id"`
	Amount        int64      `db:"amount"`
	Status        BetStatus  `db:"status"`
	WinAmount     *int64     `db:"win_amount"`
	CreatedAt     time.Time  `db:"created_at"`
	CompletedAt   *time.Time `db:"completed_at"`
}

// BetRecord is the bet projection returned to callers
type BetRecord struct {
	ID            int64   `json:"id"`
	ExternalBetID string  `json:"external_bet_id"`
	Amount        int64   `json:"amount"`
	Status        string  `json:"status"`
	WinAmount     *int64  `json:"win_amount"`
	CreatedAt     string  `json:"created_at"`
	CompletedAt   *string `json:"completed_at"`
}

// NewBetRecord projects a bet to its public fields with ISO timestamps
func NewBetRecord(b *Bet) *BetRecord {
	rec := &BetRecord{
		ID:            b.ID,
		ExternalBetID: b.ExternalBetID,
		Amount:        b.Amount,
		Status:        string(b.Status),
		WinAmount:     b.WinAmount,
		CreatedAt:     b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if b.CompletedAt != nil {
		completed := b.CompletedAt.UTC().Format(time.RFC3339)
		rec.CompletedAt = &completed
	}
	return rec
}

// WinResult is the settlement outcome returned to the caller
type WinResult struct {
	Win     int64  `json:"win"`
	Message string `json:"message"`
}
