package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"betbroker/external"
	"betbroker/models"
)

func TestBalanceService_GetBalance(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockBalanceRepo := new(MockBalanceRepository)
	mockAPI := new(MockExternalAPI)

	mockUoW.SetRepositories(nil, nil, mockBalanceRepo, nil)
	svc := NewBalanceService(mockFactory, mockAPI)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	checked := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	mockBalanceRepo.On("GetByUserID", ctx, int64(7)).
		Return(&models.Balance{UserID: 7, Balance: 42, LastCheckedAt: checked}, nil)

	info, err := svc.GetBalance(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(42), info.Balance)
	require.NotNil(t, info.LastUpdated)
	assert.Equal(t, "2026-08-30T12:00:00Z", *info.LastUpdated)
}

func TestBalanceService_GetBalance_NotFound(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockBalanceRepo := new(MockBalanceRepository)
	mockAPI := new(MockExternalAPI)

	mockUoW.SetRepositories(nil, nil, mockBalanceRepo, nil)
	svc := NewBalanceService(mockFactory, mockAPI)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockBalanceRepo.On("GetByUserID", ctx, int64(7)).Return(nil, nil)

	_, err := svc.GetBalance(ctx, 7)

	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestBalanceService_SyncExternalBalance_KeepsLocalBalance(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockExternalAccountRepository)
	mockBalanceRepo := new(MockBalanceRepository)
	mockAPI := new(MockExternalAPI)

	mockUoW.SetRepositories(mockAccountRepo, nil, mockBalanceRepo, nil)
	svc := NewBalanceService(mockFactory, mockAPI)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	mockAccountRepo.On("GetActiveByUserID", ctx, int64(7)).Return(activeAccount(), nil)
	mockAPI.On("Balance", ctx, mock.Anything, mock.Anything).
		Return(&external.BalanceResponse{Balance: 75}, nil)

	mockBalanceRepo.On("GetForUpdate", ctx, int64(7)).
		Return(&models.Balance{UserID: 7, Balance: 100, ExternalBalance: 50}, nil)

	// Only the upstream snapshot moves; settlements own the local balance
	mockBalanceRepo.On("Upsert", ctx, mock.MatchedBy(func(b *models.Balance) bool {
		return b.Balance == 100 && b.ExternalBalance == 75 && !b.LastCheckedAt.IsZero()
	})).Return(nil)

	info, err := svc.SyncExternalBalance(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(100), info.Balance)
	mockBalanceRepo.AssertExpectations(t)
}

func TestBalanceService_ListTransactions_ClampsPaging(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockTxRepo := new(MockTransactionRepository)
	mockAPI := new(MockExternalAPI)

	mockUoW.SetRepositories(nil, nil, nil, mockTxRepo)
	svc := NewBalanceService(mockFactory, mockAPI)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)

	// Out-of-range paging falls back to defaults
	mockTxRepo.On("ListByUser", ctx, int64(7), 50, 0).Return([]*models.Transaction{}, nil)

	_, err := svc.ListTransactions(ctx, 7, 1000, -5)
	require.NoError(t, err)
	mockTxRepo.AssertExpectations(t)
}

func TestAccountService_GetAccount_RedactsSecret(t *testing.T) {
	ctx := context.Background()

	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockAccountRepo := new(MockExternalAccountRepository)

	mockUoW.SetRepositories(mockAccountRepo, nil, nil, nil)
	svc := NewAccountService(mockFactory)

	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", ctx).Return(nil)
	mockUoW.On("Rollback").Return(nil)
	mockAccountRepo.On("GetActiveByUserID", ctx, int64(7)).Return(activeAccount(), nil)

	info, err := svc.GetAccount(ctx, 7)

	require.NoError(t, err)
	assert.Equal(t, "ext-7", info.ExternalUserID)
	assert.True(t, info.IsActive)
}
