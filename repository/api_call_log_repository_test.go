package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betbroker/models"
	"betbroker/repository/testutil"
)

func TestAPICallLogRepository_Record(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewAPICallLogRepository(testDB.DB)
	ctx := context.Background()

	t.Run("json bodies stored as-is", func(t *testing.T) {
		userID := int64(7)
		entry := &models.APICallLog{
			UserID:            &userID,
			Endpoint:          "https://api.example.test/bet",
			Method:            "POST",
			RequestBody:       []byte(`{"bet":3}`),
			ResponseBody:      []byte(`{"bet_id":"b1"}`),
			StatusCode:        200,
			RequestDurationMs: 120,
		}
		err := repo.Record(ctx, entry)
		require.NoError(t, err)
		assert.NotZero(t, entry.ID)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("non-json response body survives", func(t *testing.T) {
		entry := &models.APICallLog{
			Endpoint:          "https://api.example.test/win",
			Method:            "POST",
			RequestBody:       []byte(`{"bet_id":"x"}`),
			ResponseBody:      []byte("Bad Gateway"),
			StatusCode:        502,
			RequestDurationMs: 35,
		}
		err := repo.Record(ctx, entry)
		require.NoError(t, err)
		assert.NotZero(t, entry.ID)
	})

	t.Run("anonymous call without user scope", func(t *testing.T) {
		entry := &models.APICallLog{
			Endpoint:   "https://api.example.test/auth",
			Method:     "POST",
			StatusCode: 401,
		}
		err := repo.Record(ctx, entry)
		require.NoError(t, err)
	})
}

func TestAsJSON(t *testing.T) {
	assert.Nil(t, asJSON(nil))
	assert.Equal(t, []byte(`{"a":1}`), asJSON([]byte(`{"a":1}`)))
	assert.Equal(t, []byte(`"Bad Gateway"`), asJSON([]byte("Bad Gateway")))
}
