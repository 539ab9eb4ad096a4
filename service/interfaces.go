package service

import (
	"context"
	"time"

	"betbroker/events"
	"betbroker/external"
	"betbroker/models"
)

// ExternalAccountRepository defines the interface for external account lookup
type ExternalAccountRepository interface {
	// GetActiveByUserID returns the user's active external account, or
	// nil when the user has none
	GetActiveByUserID(ctx context.Context, userID int64) (*models.ExternalAccount, error)
}

// BetRepository defines the interface for bet data access
type BetRepository interface {
	// Create inserts a new pending bet; returns ErrDuplicateBet when the
	// external bet id is already taken
	Create(ctx context.Context, bet *models.Bet) error

	// GetByID retrieves a user's bet by its internal ID
	GetByID(ctx context.Context, id, userID int64) (*models.Bet, error)

	// GetByExternalID retrieves a user's bet by the upstream bet id
	GetByExternalID(ctx context.Context, externalBetID string, userID int64) (*models.Bet, error)

	// GetByExternalIDForUpdate locks and retrieves a user's bet inside
	// the current transaction, serializing concurrent settlements
	GetByExternalIDForUpdate(ctx context.Context, externalBetID string, userID int64) (*models.Bet, error)

	// ListByUser returns a user's bets, most recent first
	ListByUser(ctx context.Context, userID int64, limit int) ([]*models.Bet, error)

	// MarkSettled applies the terminal status, win amount and completion time
	MarkSettled(ctx context.Context, id int64, status models.BetStatus, winAmount int64, completedAt time.Time) error
}

// BalanceRepository defines the interface for balance rows
type BalanceRepository interface {
	// GetByUserID returns the user's balance row, or nil when absent
	GetByUserID(ctx context.Context, userID int64) (*models.Balance, error)

	// GetForUpdate locks and returns the user's balance row inside the
	// current transaction, or nil when absent
	GetForUpdate(ctx context.Context, userID int64) (*models.Balance, error)

	// Upsert creates or replaces the user's balance row
	Upsert(ctx context.Context, balance *models.Balance) error
}

// TransactionRepository defines the interface for the append-only ledger
type TransactionRepository interface {
	// Create appends a ledger entry
	Create(ctx context.Context, transaction *models.Transaction) error

	// ListByUser returns a user's ledger entries, most recent first
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Transaction, error)
}

// APICallLogRepository defines the interface for the upstream call audit
// trail. It lives outside the unit of work: audit writes are
// fire-and-forget and never join business transactions.
type APICallLogRepository interface {
	Record(ctx context.Context, entry *models.APICallLog) error
}

// EventPublisher publishes events staged until the transaction commits
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork provides transactional access to the repositories
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ExternalAccountRepository() ExternalAccountRepository
	BetRepository() BetRepository
	BalanceRepository() BalanceRepository
	TransactionRepository() TransactionRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates units of work
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// ExternalAPI is the signed upstream betting API client surface
type ExternalAPI interface {
	// Auth authenticates the credentials with the upstream API
	Auth(ctx context.Context, creds external.Credentials, userID *int64) error

	// PlaceBet places a bet of the given amount
	PlaceBet(ctx context.Context, creds external.Credentials, amount int64, userID *int64) (*external.PlaceBetResponse, error)

	// RecommendedBet fetches the suggested bet amount
	RecommendedBet(ctx context.Context, creds external.Credentials, userID *int64) (*external.RecommendedBetResponse, error)

	// Win queries the outcome of a placed bet
	Win(ctx context.Context, creds external.Credentials, betID string, userID *int64) (*external.WinResponse, error)

	// Balance fetches the balance held upstream
	Balance(ctx context.Context, creds external.Credentials, userID *int64) (*external.BalanceResponse, error)
}

// BettingService defines the interface for bet placement operations
type BettingService interface {
	// PlaceBet authenticates, places a bet upstream and persists it as pending
	PlaceBet(ctx context.Context, userID, amount int64) (*models.BetRecord, error)

	// GetRecommendedBet returns the upstream bet suggestion for the user
	GetRecommendedBet(ctx context.Context, userID int64) (int64, error)

	// GetBet returns one of the user's bets
	GetBet(ctx context.Context, userID, betID int64) (*models.BetRecord, error)

	// ListBets returns the user's bets, most recent first
	ListBets(ctx context.Context, userID int64, limit int) ([]*models.BetRecord, error)
}

// SettlementService defines the interface for bet settlement
type SettlementService interface {
	// ResolveWin queries the bet outcome upstream and applies it to the
	// ledger atomically
	ResolveWin(ctx context.Context, userID int64, externalBetID string) (*models.WinResult, error)
}

// BalanceService defines the interface for balance and ledger reads
type BalanceService interface {
	// GetBalance returns the user's current balance
	GetBalance(ctx context.Context, userID int64) (*models.BalanceInfo, error)

	// ListTransactions returns the user's ledger entries, most recent first
	ListTransactions(ctx context.Context, userID int64, limit, offset int) ([]*models.Transaction, error)

	// SyncExternalBalance refreshes the externally held balance
	SyncExternalBalance(ctx context.Context, userID int64) (*models.BalanceInfo, error)
}

// AccountService defines the interface for external account reads
type AccountService interface {
	// GetAccount returns the user's active account with the secret redacted
	GetAccount(ctx context.Context, userID int64) (*models.AccountInfo, error)
}
