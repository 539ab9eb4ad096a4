package models

import "time"

// Balance is the per-user balance row. After any successful settlement
// Balance equals the balance_after of the user's latest transaction.
type Balance struct {
	UserID          int64     `db:"user_id"`
	Balance         int64     `db:"balance"`
	ExternalBalance int64     `db:"external_balance"`
	LastCheckedAt   time.Time `db:"last_checked_at"`
}

// BalanceInfo is the balance projection returned to callers
type BalanceInfo struct {
	Balance     int64   `json:"balance"`
	LastUpdated *string `json:"last_updated"`
}

// NewBalanceInfo projects a balance row to its public fields
func NewBalanceInfo(b *Balance) *BalanceInfo {
	info := &BalanceInfo{Balance: b.Balance}
	if !b.LastCheckedAt.IsZero() {
		updated := b.LastCheckedAt.UTC().Format(time.RFC3339)
		info.LastUpdated = &updated
	}
	return info
}
