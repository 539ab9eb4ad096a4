package testutil

import (
	"context"
	"testing"
	"time"

	"betbroker/database"
	"betbroker/models"

	"github.com/stretchr/testify/require"
)

// CreateTestAccount inserts an active external account for the user
// and returns it with its generated id
func CreateTestAccount(t *testing.T, db *database.DB, userID int64, externalUserID string) *models.ExternalAccount {
	account := &models.ExternalAccount{
		UserID:         userID,
		ExternalUserID: externalUserID,
		SecretKey:      "test-secret",
		IsActive:       true,
	}
	err := db.Pool.QueryRow(context.Background(), `
		INSERT INTO external_api_accounts (user_id, external_user_id, external_secret_key, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, account.UserID, account.ExternalUserID, account.SecretKey, account.IsActive).
		Scan(&account.ID, &account.CreatedAt)
	require.NoError(t, err)
	return account
}

// NewTestBet builds a pending bet with default values
func NewTestBet(userID int64, externalBetID string) *models.Bet {
	return &models.Bet{
		UserID:        userID,
		ExternalBetID: externalBetID,
		Amount:        3,
		Status:        models.BetStatusPending,
	}
}

// NewTestBalance builds a balance row with the given local balance
func NewTestBalance(userID, balance int64) *models.Balance {
	return &models.Balance{
		UserID:        userID,
		Balance:       balance,
		LastCheckedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// NewTestTransaction builds a ledger entry linking balances before and after
func NewTestTransaction(userID int64, betID *int64, txType models.TransactionType, amount, before, after int64) *models.Transaction {
	return &models.Transaction{
		UserID:        userID,
		BetID:         betID,
		Type:          txType,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   "test transaction",
	}
}
