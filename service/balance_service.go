package service

import (
	"context"
	"time"

	"betbroker/models"
)

type balanceService struct {
	uowFactory UnitOfWorkFactory
	api        ExternalAPI
}

// NewBalanceService creates a new balance service
func NewBalanceService(uowFactory UnitOfWorkFactory, api ExternalAPI) BalanceService {
	return &balanceService{
		uowFactory: uowFactory,
		api:        api,
	}
}

func (s *balanceService) GetBalance(ctx context.Context, userID int64) (*models.BalanceInfo, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, WrapError(KindPersistence, "failed to begin transaction", err)
	}
	defer uow.Rollback()

	balance, err := uow.BalanceRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, WrapError(KindPersistence, "failed to get balance", err)
	}
	if balance == nil {
		return nil, NewError(KindNotFound, "balance not found")
	}

	return models.NewBalanceInfo(balance), nil
}

func (s *balanceService) ListTransactions(ctx context.Context, userID int64, limit, offset int) ([]*models.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, WrapError(KindPersistence, "failed to begin transaction", err)
	}
	defer uow.Rollback()

	transactions, err := uow.TransactionRepository().ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, WrapError(KindPersistence, "failed to list transactions", err)
	}
	return transactions, nil
}

// SyncExternalBalance fetches the balance held upstream and records it
// on the balance row. The local balance is never touched here; only
// settlements move it.
func (s *balanceService) SyncExternalBalance(ctx context.Context, userID int64) (*models.BalanceInfo, error) {
	account, err := resolveAccount(ctx, s.uowFactory, userID)
	if err != nil {
		return nil, err
	}

	upstream, err := s.api.Balance(ctx, accountCredentials(account), &userID)
	if err != nil {
		return nil, WrapError(KindUpstream, "failed to fetch upstream balance", err)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, WrapError(KindPersistence, "failed to begin transaction", err)
	}
	defer uow.Rollback()

	var local int64
	balance, err := uow.BalanceRepository().GetForUpdate(ctx, userID)
	if err != nil {
		return nil, WrapError(KindPersistence, "failed to lock balance", err)
	}
	if balance != nil {
		local = balance.Balance
	}

	updated := &models.Balance{
		UserID:          userID,
		Balance:         local,
		ExternalBalance: upstream.Balance,
		LastCheckedAt:   time.Now().UTC(),
	}
	if err := uow.BalanceRepository().Upsert(ctx, updated); err != nil {
		return nil, WrapError(KindPersistence, "failed to update balance", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, WrapError(KindPersistence, "failed to commit transaction", err)
	}

	return models.NewBalanceInfo(updated), nil
}
