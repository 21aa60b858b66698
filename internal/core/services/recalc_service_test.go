package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propledger/funded_account_app/internal/core/domain"
	portssvc "github.com/propledger/funded_account_app/internal/core/ports/services"
	"github.com/propledger/funded_account_app/internal/core/services"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccountData(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Mock TradeRepository ---
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error) {
	args := m.Called(ctx, tradeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradeRepository) ListTradesByAccount(ctx context.Context, accountID string) ([]domain.Trade, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trade), args.Error(1)
}

func (m *MockTradeRepository) SaveTrade(ctx context.Context, trade domain.Trade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *MockTradeRepository) UpdateTrade(ctx context.Context, trade domain.Trade) error {
	args := m.Called(ctx, trade)
	return args.Error(0)
}

func (m *MockTradeRepository) DeleteTrade(ctx context.Context, tradeID string) error {
	args := m.Called(ctx, tradeID)
	return args.Error(0)
}

// --- Mock ActivityLogger ---
type MockActivityLogger struct {
	mock.Mock
}

func (m *MockActivityLogger) Record(ctx context.Context, event domain.ActivityEvent) {
	m.Called(ctx, event)
}

// --- Test Suite ---
type RecalcServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTradeRepo   *MockTradeRepository
	mockActivity    *MockActivityLogger
	service         portssvc.Recalculator
	fixedNow        time.Time
}

func (suite *RecalcServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTradeRepo = new(MockTradeRepository)
	suite.mockActivity = new(MockActivityLogger)
	suite.fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewRecalcService(
		suite.mockAccountRepo,
		suite.mockTradeRepo,
		suite.mockActivity,
		services.WithRecalcClock(func() time.Time { return suite.fixedNow }),
	)
}

func (suite *RecalcServiceTestSuite) activeAccount() *domain.Account {
	return &domain.Account{
		AccountID:      "acc-1",
		Phase:          domain.PhaseEval1,
		Status:         domain.StatusActive,
		Principal:      decimal.NewFromInt(100000),
		CurrentBalance: decimal.NewFromInt(100000),
		MaxDrawdownPct: decimal.NewFromInt(10),
	}
}

func (suite *RecalcServiceTestSuite) trade(id string, executedAt time.Time, newBalance int64) domain.Trade {
	return domain.Trade{
		TradeID:    id,
		AccountID:  "acc-1",
		NewBalance: decimal.NewFromInt(newBalance),
		ExecutedAt: executedAt,
	}
}

// --- Test Cases ---

func (suite *RecalcServiceTestSuite) TestRecalculate_EmptyLedgerResetsToPrincipal() {
	ctx := context.Background()
	account := suite.activeAccount()
	account.CurrentBalance = decimal.NewFromInt(123456)

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(account, nil).Once()
	suite.mockTradeRepo.On("ListTradesByAccount", ctx, "acc-1").Return([]domain.Trade{}, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.CurrentBalance.Equal(decimal.NewFromInt(100000)) && a.Status == domain.StatusActive
	})).Return(nil).Once()

	updated, err := suite.service.Recalculate(ctx, "acc-1", "user-1")

	suite.Require().NoError(err)
	suite.True(updated.CurrentBalance.Equal(decimal.NewFromInt(100000)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTradeRepo.AssertExpectations(suite.T())
}

func (suite *RecalcServiceTestSuite) TestRecalculate_UsesLastTradeByExecutionTime() {
	ctx := context.Background()
	account := suite.activeAccount()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	// Deliberately out of order; the store guarantees no ordering.
	trades := []domain.Trade{
		suite.trade("01TRADE3", base.Add(2*time.Hour), 99000),
		suite.trade("01TRADE1", base, 101000),
		suite.trade("01TRADE2", base.Add(time.Hour), 102500),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(account, nil).Once()
	suite.mockTradeRepo.On("ListTradesByAccount", ctx, "acc-1").Return(trades, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.CurrentBalance.Equal(decimal.NewFromInt(99000))
	})).Return(nil).Once()

	updated, err := suite.service.Recalculate(ctx, "acc-1", "user-1")

	suite.Require().NoError(err)
	suite.True(updated.CurrentBalance.Equal(decimal.NewFromInt(99000)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *RecalcServiceTestSuite) TestRecalculate_IsIdempotent() {
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	trades := []domain.Trade{
		suite.trade("01TRADE1", base, 101000),
		suite.trade("01TRADE2", base.Add(time.Hour), 103000),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(suite.activeAccount(), nil).Twice()
	suite.mockTradeRepo.On("ListTradesByAccount", ctx, "acc-1").Return(trades, nil).Twice()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Twice()

	first, err := suite.service.Recalculate(ctx, "acc-1", "user-1")
	suite.Require().NoError(err)
	second, err := suite.service.Recalculate(ctx, "acc-1", "user-1")
	suite.Require().NoError(err)

	suite.True(first.CurrentBalance.Equal(second.CurrentBalance))
	suite.True(second.CurrentBalance.Equal(decimal.NewFromInt(103000)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *RecalcServiceTestSuite) TestRecalculate_BreachTransitionsActiveToBreached() {
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	trades := []domain.Trade{
		suite.trade("01TRADE1", base, 89999),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(suite.activeAccount(), nil).Once()
	suite.mockTradeRepo.On("ListTradesByAccount", ctx, "acc-1").Return(trades, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Status == domain.StatusBreached
	})).Return(nil).Once()
	suite.mockActivity.On("Record", ctx, mock.MatchedBy(func(e domain.ActivityEvent) bool {
		return e.Type == domain.EventBreached &&
			e.AccountID == "acc-1" &&
			e.Before.Status == domain.StatusActive &&
			e.After.Status == domain.StatusBreached
	})).Once()

	updated, err := suite.service.Recalculate(ctx, "acc-1", "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusBreached, updated.Status)
	suite.mockActivity.AssertExpectations(suite.T())
}

func (suite *RecalcServiceTestSuite) TestRecalculate_NeverUnbreaches() {
	ctx := context.Background()
	account := suite.activeAccount()
	account.Status = domain.StatusBreached
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	// Ledger now ends well above the floor; status must stay BREACHED.
	trades := []domain.Trade{
		suite.trade("01TRADE1", base, 105000),
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(account, nil).Once()
	suite.mockTradeRepo.On("ListTradesByAccount", ctx, "acc-1").Return(trades, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Status == domain.StatusBreached && a.CurrentBalance.Equal(decimal.NewFromInt(105000))
	})).Return(nil).Once()

	updated, err := suite.service.Recalculate(ctx, "acc-1", "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusBreached, updated.Status)
	suite.mockActivity.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestRecalcService(t *testing.T) {
	suite.Run(t, new(RecalcServiceTestSuite))
}
