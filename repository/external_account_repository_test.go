package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betbroker/repository/testutil"
)

func TestExternalAccountRepository_GetActiveByUserID(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewExternalAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("no account", func(t *testing.T) {
		account, err := repo.GetActiveByUserID(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("active account found", func(t *testing.T) {
		created := testutil.CreateTestAccount(t, testDB.DB, 2, "ext-2")

		account, err := repo.GetActiveByUserID(ctx, 2)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, created.ID, account.ID)
		assert.Equal(t, "ext-2", account.ExternalUserID)
		assert.Equal(t, "test-secret", account.SecretKey)
	})

	t.Run("deactivated account is invisible", func(t *testing.T) {
		created := testutil.CreateTestAccount(t, testDB.DB, 3, "ext-3")
		_, err := testDB.DB.Pool.Exec(ctx,
			`UPDATE external_api_accounts SET is_active = false WHERE id = $1`, created.ID)
		require.NoError(t, err)

		account, err := repo.GetActiveByUserID(ctx, 3)
		require.NoError(t, err)
		assert.Nil(t, account)
	})
}
