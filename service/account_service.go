package service

import (
	"context"

	"betbroker/models"
)

type accountService struct {
	uowFactory UnitOfWorkFactory
}

// NewAccountService creates a new account service
func NewAccountService(uowFactory UnitOfWorkFactory) AccountService {
	return &accountService{uowFactory: uowFactory}
}

func (s *accountService) GetAccount(ctx context.Context, userID int64) (*models.AccountInfo, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, WrapError(KindPersistence, "failed to begin transaction", err)
	}
	defer uow.Rollback()

	account, err := uow.ExternalAccountRepository().GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, WrapError(KindPersistence, "failed to get external account", err)
	}
	if account == nil {
		return nil, NewError(KindNotFound, "no active external account for user")
	}

	return models.NewAccountInfo(account), nil
}
