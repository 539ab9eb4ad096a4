package service

import (
	"context"
	"fmt"
	"time"

	"betbroker/events"
	"betbroker/models"
)

type settlementService struct {
	uowFactory UnitOfWorkFactory
	api        ExternalAPI
}

// NewSettlementService creates a new settlement service
func NewSettlementService(uowFactory UnitOfWorkFactory, api ExternalAPI) SettlementService {
	return &settlementService{
		uowFactory: uowFactory,
		api:        api,
	}
}

// ResolveWin queries the upstream outcome for a bet and applies it:
// bet status, balance row and ledger entry change in one transaction,
// or none of them do.
func (s *settlementService) ResolveWin(ctx context.Context, userID int64, externalBetID string) (*models.WinResult, error) {
	if externalBetID == "" {
		return nil, NewError(KindValidation, "bet id is required")
	}

	account, err := resolveAccount(ctx, s.uowFactory, userID)
	if err != nil {
		return nil, err
	}

	// Cheap pre-checks before the upstream round trip. The write
	// transaction re-checks under lock; this only avoids pointless
	// upstream calls for unknown or already settled bets.
	bet, err := s.loadBet(ctx, userID, externalBetID)
	if err != nil {
		return nil, err
	}
	if bet.Status.Terminal() {
		return nil, NewError(KindConflict, fmt.Sprintf("bet %s is already settled", externalBetID))
	}

	outcome, err := s.api.Win(ctx, accountCredentials(account), externalBetID, &userID)
	if err != nil {
		return nil, WrapError(KindUpstream, "failed to resolve bet outcome upstream", err)
	}

	if err := s.applyOutcome(ctx, userID, externalBetID, outcome.Win, outcome.Message); err != nil {
		return nil, err
	}

	return &models.WinResult{Win: outcome.Win, Message: outcome.Message}, nil
}

func (s *settlementService) loadBet(ctx context.Context, userID int64, externalBetID string) (*models.Bet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, WrapError(KindPersistence, "failed to begin transaction", err)
	}
	defer uow.Rollback()

	bet, err := uow.BetRepository().GetByExternalID(ctx, externalBetID, userID)
	if err != nil {
		return nil, WrapError(KindPersistence, "failed to get bet", err)
	}
	if bet == nil {
		return nil, NewError(KindNotFound, fmt.Sprintf("bet %s not found", externalBetID))
	}
	return bet, nil
}

// applyOutcome performs the settlement writes. Concurrent settlements
// of the same bet serialize on the locked bet row; whichever commits
// second observes a terminal status and reports a conflict.
func (s *settlementService) applyOutcome(ctx context.Context, userID int64, externalBetID string, win int64, message string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return WrapError(KindPersistence, "failed to begin transaction", err)
	}
	defer uow.Rollback() // No-op if already committed

	bet, err := uow.BetRepository().GetByExternalIDForUpdate(ctx, externalBetID, userID)
	if err != nil {
		return WrapError(KindPersistence, "failed to lock bet", err)
	}
	if bet == nil {
		return NewError(KindNotFound, fmt.Sprintf("bet %s not found", externalBetID))
	}
	if bet.Status.Terminal() {
		return NewError(KindConflict, fmt.Sprintf("bet %s is already settled", externalBetID))
	}

	// A user who has never settled a bet has no balance row yet; they
	// start from zero.
	var balanceBefore int64
	balance, err := uow.BalanceRepository().GetForUpdate(ctx, userID)
	if err != nil {
		return WrapError(KindPersistence, "failed to lock balance", err)
	}
	if balance != nil {
		balanceBefore = balance.Balance
	}

	won := win > 0
	var (
		balanceAfter    int64
		changeAmount    int64
		transactionType models.TransactionType
		status          models.BetStatus
	)
	if won {
		balanceAfter = balanceBefore + win
		changeAmount = win
		transactionType = models.TransactionTypeBetWin
		status = models.BetStatusCompleted
	} else {
		balanceAfter = balanceBefore - bet.Amount
		changeAmount = -bet.Amount
		transactionType = models.TransactionTypeBetLose
		status = models.BetStatusLost
	}

	now := time.Now().UTC()
	if err := uow.BetRepository().MarkSettled(ctx, bet.ID, status, win, now); err != nil {
		return WrapError(KindPersistence, "failed to settle bet", err)
	}

	// Both balances are stamped with the settled value; balance sync is
	// the only other writer of external_balance.
	if err := uow.BalanceRepository().Upsert(ctx, &models.Balance{
		UserID:          userID,
		Balance:         balanceAfter,
		ExternalBalance: balanceAfter,
		LastCheckedAt:   now,
	}); err != nil {
		return WrapError(KindPersistence, "failed to update balance", err)
	}

	if err := uow.TransactionRepository().Create(ctx, &models.Transaction{
		UserID:        userID,
		BetID:         &bet.ID,
		Type:          transactionType,
		Amount:        changeAmount,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		Description:   message,
	}); err != nil {
		return WrapError(KindPersistence, "failed to record transaction", err)
	}

	uow.EventBus().Publish(events.BetSettledEvent{
		UserID:    userID,
		BetID:     bet.ID,
		Won:       won,
		WinAmount: win,
	})
	uow.EventBus().Publish(events.BalanceChangeEvent{
		UserID:          userID,
		OldBalance:      balanceBefore,
		NewBalance:      balanceAfter,
		ChangeAmount:    changeAmount,
		TransactionType: transactionType,
	})

	if err := uow.Commit(); err != nil {
		return WrapError(KindPersistence, "failed to commit transaction", err)
	}

	return nil
}
