package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betbroker/models"
	"betbroker/repository/testutil"
	"betbroker/service"
)

func TestBetRepository_Create(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		bet := testutil.NewTestBet(1, "ext-bet-1")
		err := repo.Create(ctx, bet)
		require.NoError(t, err)
		assert.NotZero(t, bet.ID)
		assert.False(t, bet.CreatedAt.IsZero())
	})

	t.Run("duplicate external bet id", func(t *testing.T) {
		first := testutil.NewTestBet(1, "ext-bet-dup")
		require.NoError(t, repo.Create(ctx, first))

		second := testutil.NewTestBet(2, "ext-bet-dup")
		err := repo.Create(ctx, second)
		assert.ErrorIs(t, err, service.ErrDuplicateBet)
	})
}

func TestBetRepository_GetByExternalID(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		bet, err := repo.GetByExternalID(ctx, "missing", 1)
		require.NoError(t, err)
		assert.Nil(t, bet)
	})

	t.Run("found", func(t *testing.T) {
		created := testutil.NewTestBet(1, "ext-bet-get")
		require.NoError(t, repo.Create(ctx, created))

		bet, err := repo.GetByExternalID(ctx, "ext-bet-get", 1)
		require.NoError(t, err)
		require.NotNil(t, bet)
		assert.Equal(t, created.ID, bet.ID)
		assert.Equal(t, models.BetStatusPending, bet.Status)
		assert.Nil(t, bet.WinAmount)
		assert.Nil(t, bet.CompletedAt)
	})

	t.Run("scoped by user", func(t *testing.T) {
		created := testutil.NewTestBet(5, "ext-bet-scope")
		require.NoError(t, repo.Create(ctx, created))

		// Another user cannot see the bet
		bet, err := repo.GetByExternalID(ctx, "ext-bet-scope", 6)
		require.NoError(t, err)
		assert.Nil(t, bet)
	})
}

func TestBetRepository_MarkSettled(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	t.Run("settles a pending bet once", func(t *testing.T) {
		bet := testutil.NewTestBet(1, "ext-bet-settle")
		require.NoError(t, repo.Create(ctx, bet))

		completedAt := time.Now().UTC()
		err := repo.MarkSettled(ctx, bet.ID, models.BetStatusCompleted, 6, completedAt)
		require.NoError(t, err)

		settled, err := repo.GetByID(ctx, bet.ID, 1)
		require.NoError(t, err)
		require.NotNil(t, settled)
		assert.Equal(t, models.BetStatusCompleted, settled.Status)
		require.NotNil(t, settled.WinAmount)
		assert.Equal(t, int64(6), *settled.WinAmount)
		require.NotNil(t, settled.CompletedAt)

		// Second settlement is rejected; the bet is no longer pending
		err = repo.MarkSettled(ctx, bet.ID, models.BetStatusLost, 0, time.Now().UTC())
		assert.Error(t, err)
	})

	t.Run("unknown bet", func(t *testing.T) {
		err := repo.MarkSettled(ctx, 999999, models.BetStatusLost, 0, time.Now().UTC())
		assert.Error(t, err)
	})
}

func TestBetRepository_ListByUser(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewBetRepository(testDB.DB)
	ctx := context.Background()

	for _, id := range []string{"l-1", "l-2", "l-3"} {
		require.NoError(t, repo.Create(ctx, testutil.NewTestBet(9, id)))
	}
	require.NoError(t, repo.Create(ctx, testutil.NewTestBet(10, "other-user")))

	bets, err := repo.ListByUser(ctx, 9, 10)
	require.NoError(t, err)
	assert.Len(t, bets, 3)
	for _, bet := range bets {
		assert.Equal(t, int64(9), bet.UserID)
	}

	limited, err := repo.ListByUser(ctx, 9, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
