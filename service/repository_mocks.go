package service

import (
	"context"
	"time"

	"betbroker/events"
	"betbroker/external"
	"betbroker/models"

	"github.com/stretchr/testify/mock"
)

// MockExternalAccountRepository is a mock implementation of ExternalAccountRepository
type MockExternalAccountRepository struct {
	mock.Mock
}

func (m *MockExternalAccountRepository) GetActiveByUserID(ctx context.Context, userID int64) (*models.ExternalAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExternalAccount), args.Error(1)
}

// MockBetRepository is a mock implementation of BetRepository
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) Create(ctx context.Context, bet *models.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockBetRepository) GetByID(ctx context.Context, id, userID int64) (*models.Bet, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockBetRepository) GetByExternalID(ctx context.Context, externalBetID string, userID int64) (*models.Bet, error) {
	args := m.Called(ctx, externalBetID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockBetRepository) GetByExternalIDForUpdate(ctx context.Context, externalBetID string, userID int64) (*models.Bet, error) {
	args := m.Called(ctx, externalBetID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockBetRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]*models.Bet, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bet), args.Error(1)
}

func (m *MockBetRepository) MarkSettled(ctx context.Context, id int64, status models.BetStatus, winAmount int64, completedAt time.Time) error {
	args := m.Called(ctx, id, status, winAmount, completedAt)
	return args.Error(0)
}

// MockBalanceRepository is a mock implementation of BalanceRepository
type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) GetByUserID(ctx context.Context, userID int64) (*models.Balance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *MockBalanceRepository) GetForUpdate(ctx context.Context, userID int64) (*models.Balance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Balance), args.Error(1)
}

func (m *MockBalanceRepository) Upsert(ctx context.Context, balance *models.Balance) error {
	args := m.Called(ctx, balance)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	args := m.Called(ctx, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Transaction, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

// MockAPICallLogRepository is a mock implementation of APICallLogRepository
type MockAPICallLogRepository struct {
	mock.Mock
}

func (m *MockAPICallLogRepository) Record(ctx context.Context, entry *models.APICallLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockExternalAPI is a mock implementation of ExternalAPI
type MockExternalAPI struct {
	mock.Mock
}

func (m *MockExternalAPI) Auth(ctx context.Context, creds external.Credentials, userID *int64) error {
	args := m.Called(ctx, creds, userID)
	return args.Error(0)
}

func (m *MockExternalAPI) PlaceBet(ctx context.Context, creds external.Credentials, amount int64, userID *int64) (*external.PlaceBetResponse, error) {
	args := m.Called(ctx, creds, amount, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*external.PlaceBetResponse), args.Error(1)
}

func (m *MockExternalAPI) RecommendedBet(ctx context.Context, creds external.Credentials, userID *int64) (*external.RecommendedBetResponse, error) {
	args := m.Called(ctx, creds, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*external.RecommendedBetResponse), args.Error(1)
}

func (m *MockExternalAPI) Win(ctx context.Context, creds external.Credentials, betID string, userID *int64) (*external.WinResponse, error) {
	args := m.Called(ctx, creds, betID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*external.WinResponse), args.Error(1)
}

func (m *MockExternalAPI) Balance(ctx context.Context, creds external.Credentials, userID *int64) (*external.BalanceResponse, error) {
	args := m.Called(ctx, creds, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*external.BalanceResponse), args.Error(1)
}

// noopPublisher drops events; used where tests do not assert on them
type noopPublisher struct{}

func (noopPublisher) Publish(events.Event) {}

// MockUnitOfWork is a mock implementation of UnitOfWork backed by
// repository mocks set via SetRepositories
type MockUnitOfWork struct {
	mock.Mock

	externalAccountRepo ExternalAccountRepository
	betRepo             BetRepository
	balanceRepo         BalanceRepository
	transactionRepo     TransactionRepository
	eventBus            EventPublisher
}

// SetRepositories wires the repository mocks this unit of work exposes
func (m *MockUnitOfWork) SetRepositories(
	externalAccountRepo ExternalAccountRepository,
	betRepo BetRepository,
	balanceRepo BalanceRepository,
	transactionRepo TransactionRepository,
) {
	m.externalAccountRepo = externalAccountRepo
	m.betRepo = betRepo
	m.balanceRepo = balanceRepo
	m.transactionRepo = transactionRepo
}

// SetEventBus replaces the default no-op event publisher
func (m *MockUnitOfWork) SetEventBus(bus EventPublisher) {
	m.eventBus = bus
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) ExternalAccountRepository() ExternalAccountRepository {
	return m.externalAccountRepo
}

func (m *MockUnitOfWork) BetRepository() BetRepository {
	return m.betRepo
}

func (m *MockUnitOfWork) BalanceRepository() BalanceRepository {
	return m.balanceRepo
}

func (m *MockUnitOfWork) TransactionRepository() TransactionRepository {
	return m.transactionRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.eventBus == nil {
		return noopPublisher{}
	}
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
