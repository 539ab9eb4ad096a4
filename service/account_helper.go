package service

import (
	"context"

	"betbroker/external"
	"betbroker/models"
)

// resolveAccount loads the caller's active upstream account inside a
// short read transaction. A user without one cannot reach the upstream
// API at all.
func resolveAccount(ctx context.Context, uowFactory UnitOfWorkFactory, userID int64) (*models.ExternalAccount, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, WrapError(KindPersistence, "failed to begin transaction", err)
	}
	defer uow.Rollback()

	account, err := uow.ExternalAccountRepository().GetActiveByUserID(ctx, userID)
	if err != nil {
		return nil, WrapError(KindPersistence, "failed to get external account", err)
	}
	if account == nil {
		return nil, NewError(KindUnauthorized, "no active external account for user")
	}
	return account, nil
}

// accountCredentials builds the signing credentials for an account.
// The secret key stays inside this package and the external client.
func accountCredentials(account *models.ExternalAccount) external.Credentials {
	return external.Credentials{
		ExternalUserID: account.ExternalUserID,
		SecretKey:      account.SecretKey,
	}
}
