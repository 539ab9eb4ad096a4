package service

import (
	"context"
	"errors"
	"fmt"

	"betbroker/config"
	"betbroker/events"
	"betbroker/models"
)

type bettingService struct {
	uowFactory UnitOfWorkFactory
	api        ExternalAPI
}

// NewBettingService creates a new betting service
func NewBettingService(uowFactory UnitOfWorkFactory, api ExternalAPI) BettingService {
	return &bettingService{
		uowFactory: uowFactory,
		api:        api,
	}
}

func (s *bettingService) PlaceBet(ctx context.Context, userID, amount int64) (*models.BetRecord, error) {
	cfg := config.Get()
	if amount < cfg.MinBetAmount || amount > cfg.MaxBetAmount {
		return nil, NewError(KindValidation,
			fmt.Sprintf("bet amount must be between %d and %d", cfg.MinBetAmount, cfg.MaxBetAmount))
	}

	account, err := resolveAccount(ctx, s.uowFactory, userID)
	if err != nil {
		return nil, err
	}
	creds := accountCredentials(account)

	// Upstream calls stay outside the transaction; holding row locks
	// across network round trips is not acceptable.
	if err := s.api.Auth(ctx, creds, &userID); err != nil {
		return nil, WrapError(KindUpstream, "upstream authentication failed", err)
	}

	placed, err := s.api.PlaceBet(ctx, creds, amount, &userID)
	if err != nil {
		return nil, WrapError(KindUpstream, "upstream bet placement failed", err)
	}
	if placed.BetID == "" {
		return nil, NewError(KindUpstream, "upstream accepted the bet but returned no bet id")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, WrapError(KindPersistence, "failed to begin transaction", err)
	}
	defer uow.Rollback() // No-op if already committed

	bet := &models.Bet{
		UserID:        userID,
		ExternalBetID: placed.BetID,
		Amount:        amount,
		Status:        models.BetStatusPending,
	}
	if err := uow.BetRepository().Create(ctx, bet); err != nil {
		if errors.Is(err, ErrDuplicateBet) {
			return nil, WrapError(KindConflict,
				fmt.Sprintf("bet %s has already been recorded", placed.BetID), err)
		}
		return nil, WrapError(KindPersistence, "failed to persist bet", err)
	}

	uow.EventBus().Publish(events.BetPlacedEvent{
		UserID:        userID,
		BetID:         bet.ID,
		ExternalBetID: bet.ExternalBetID,
		Amount:        bet.Amount,
	})

	if err := uow.Commit(); err != nil {
		return nil, WrapError(KindPersistence, "failed to commit transaction", err)
	}

	return models.NewBetRecord(bet), nil
}

func (s *bettingService) GetRecommendedBet(ctx context.Context, userID int64) (int64, error) {
	account, err := resolveAccount(ctx, s.uowFactory, userID)
	if err != nil {
		return 0, err
	}

	resp, err := s.api.RecommendedBet(ctx, accountCredentials(account), &userID)
	if err != nil {
		return 0, WrapError(KindUpstream, "failed to fetch recommended bet", err)
	}
	return resp.Bet, nil
}

func (s *bettingService) GetBet(ctx context.Context, userID, betID int64) (*models.BetRecord, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, WrapError(KindPersistence, "failed to begin transaction", err)
	}
	defer uow.Rollback()

	bet, err := uow.BetRepository().GetByID(ctx, betID, userID)
	if err != nil {
		return nil, WrapError(KindPersistence, "failed to get bet", err)
	}
	if bet == nil {
		return nil, NewError(KindNotFound, fmt.Sprintf("bet %d not found", betID))
	}

	return models.NewBetRecord(bet), nil
}

func (s *bettingService) ListBets(ctx context.Context, userID int64, limit int) ([]*models.BetRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, WrapError(KindPersistence, "failed to begin transaction", err)
	}
	defer uow.Rollback()

	bets, err := uow.BetRepository().ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, WrapError(KindPersistence, "failed to list bets", err)
	}

	records := make([]*models.BetRecord, 0, len(bets))
	for _, bet := range bets {
		records = append(records, models.NewBetRecord(bet))
	}
	return records, nil
}
