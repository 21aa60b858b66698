package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propledger/funded_account_app/internal/apperrors"
	"github.com/propledger/funded_account_app/internal/core/domain"
	portssvc "github.com/propledger/funded_account_app/internal/core/ports/services"
	"github.com/propledger/funded_account_app/internal/core/services"
)

// --- Mock SnapshotRepository ---
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) FindSnapshot(ctx context.Context, accountID string, tradingDay string) (*domain.DailySnapshot, error) {
	args := m.Called(ctx, accountID, tradingDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailySnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) ListSnapshotsByAccount(ctx context.Context, accountID string, limit int) ([]domain.DailySnapshot, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailySnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.DailySnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) DeleteSnapshotsForDay(ctx context.Context, accountID string, tradingDay string) (int64, error) {
	args := m.Called(ctx, accountID, tradingDay)
	return args.Get(0).(int64), args.Error(1)
}

// --- Test Suite ---
type RiskServiceTestSuite struct {
	suite.Suite
	mockRepo   *MockSnapshotRepository
	service    portssvc.RiskSvcFacade
	fixedNow   time.Time
	tradingDay string
	account    *domain.Account
}

func (suite *RiskServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSnapshotRepository)
	suite.fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	suite.tradingDay = domain.TradingDayOf(suite.fixedNow)
	suite.service = services.NewRiskService(suite.mockRepo, services.WithRiskClock(func() time.Time { return suite.fixedNow }))
	suite.account = &domain.Account{
		AccountID:        "acc-1",
		Phase:            domain.PhaseEval1,
		Status:           domain.StatusActive,
		Principal:        decimal.NewFromInt(100000),
		CurrentBalance:   decimal.NewFromInt(102000),
		MaxDrawdownPct:   decimal.NewFromInt(10),
		DailyDrawdownPct: decimal.NewFromInt(5),
	}
}

// --- Test Cases ---

func (suite *RiskServiceTestSuite) TestEnsureSnapshot_CreatesWhenAbsent() {
	ctx := context.Background()

	suite.mockRepo.On("FindSnapshot", ctx, "acc-1", suite.tradingDay).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveSnapshot", ctx, mock.MatchedBy(func(s domain.DailySnapshot) bool {
		return s.AccountID == "acc-1" &&
			s.TradingDay == suite.tradingDay &&
			s.StartingBalance.Equal(decimal.NewFromInt(102000)) &&
			s.DailyDDLevel.Equal(decimal.NewFromInt(97000)) &&
			!s.IsPayoutReset
	})).Return(nil).Once()

	snapshot, err := suite.service.EnsureSnapshot(ctx, suite.account, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(snapshot)
	suite.Equal(suite.tradingDay, snapshot.TradingDay)
	suite.True(snapshot.StartingBalance.Equal(decimal.NewFromInt(102000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RiskServiceTestSuite) TestEnsureSnapshot_ReturnsExistingUnchanged() {
	ctx := context.Background()
	existing := &domain.DailySnapshot{
		SnapshotID:      "snap-1",
		AccountID:       "acc-1",
		TradingDay:      suite.tradingDay,
		StartingBalance: decimal.NewFromInt(101000),
		DailyDDLevel:    decimal.NewFromInt(96000),
	}

	suite.mockRepo.On("FindSnapshot", ctx, "acc-1", suite.tradingDay).Return(existing, nil).Twice()

	first, err := suite.service.EnsureSnapshot(ctx, suite.account, "user-1")
	suite.Require().NoError(err)
	second, err := suite.service.EnsureSnapshot(ctx, suite.account, "user-1")
	suite.Require().NoError(err)

	suite.Equal(first, second)
	suite.Equal("snap-1", second.SnapshotID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSnapshot", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RiskServiceTestSuite) TestEnsureSnapshot_ConcurrentInsertLosesToExisting() {
	ctx := context.Background()
	existing := &domain.DailySnapshot{
		SnapshotID: "snap-other",
		AccountID:  "acc-1",
		TradingDay: suite.tradingDay,
	}

	suite.mockRepo.On("FindSnapshot", ctx, "acc-1", suite.tradingDay).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveSnapshot", ctx, mock.AnythingOfType("domain.DailySnapshot")).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindSnapshot", ctx, "acc-1", suite.tradingDay).Return(existing, nil).Once()

	snapshot, err := suite.service.EnsureSnapshot(ctx, suite.account, "user-1")

	suite.Require().NoError(err)
	suite.Equal("snap-other", snapshot.SnapshotID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RiskServiceTestSuite) TestDailyDDLevel_FromSnapshot() {
	ctx := context.Background()
	existing := &domain.DailySnapshot{
		SnapshotID:      "snap-1",
		AccountID:       "acc-1",
		TradingDay:      suite.tradingDay,
		StartingBalance: decimal.NewFromInt(101000),
		DailyDDLevel:    decimal.NewFromInt(96000),
	}

	suite.mockRepo.On("FindSnapshot", ctx, "acc-1", suite.tradingDay).Return(existing, nil).Once()

	level, degraded, err := suite.service.DailyDDLevel(ctx, suite.account, "user-1")

	suite.Require().NoError(err)
	suite.False(degraded)
	suite.True(level.Equal(decimal.NewFromInt(96000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RiskServiceTestSuite) TestDailyDDLevel_StatelessFallbackWhenStoreDown() {
	ctx := context.Background()
	storeErr := apperrors.ErrStoreUnavailable

	suite.mockRepo.On("FindSnapshot", ctx, "acc-1", suite.tradingDay).Return(nil, storeErr).Once()

	level, degraded, err := suite.service.DailyDDLevel(ctx, suite.account, "user-1")

	suite.Require().NoError(err)
	suite.True(degraded)
	// Fallback computes from the live balance: 102000 - 100000*5/100.
	suite.True(level.Equal(decimal.NewFromInt(97000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RiskServiceTestSuite) TestDailyPnL_NoSnapshotMeansZero() {
	ctx := context.Background()

	suite.mockRepo.On("FindSnapshot", ctx, "acc-1", suite.tradingDay).Return(nil, apperrors.ErrNotFound).Once()

	pnl, err := suite.service.DailyPnL(ctx, suite.account)

	suite.Require().NoError(err)
	suite.True(pnl.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RiskServiceTestSuite) TestDailyPnL_FromSnapshot() {
	ctx := context.Background()
	existing := &domain.DailySnapshot{
		AccountID:       "acc-1",
		TradingDay:      suite.tradingDay,
		StartingBalance: decimal.NewFromInt(101000),
	}

	suite.mockRepo.On("FindSnapshot", ctx, "acc-1", suite.tradingDay).Return(existing, nil).Once()

	pnl, err := suite.service.DailyPnL(ctx, suite.account)

	suite.Require().NoError(err)
	suite.True(pnl.Equal(decimal.NewFromInt(1000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RiskServiceTestSuite) TestIsDailyBreached_AlwaysFalse() {
	drained := *suite.account
	drained.CurrentBalance = decimal.NewFromInt(1)
	suite.False(suite.service.IsDailyBreached(&drained))
}

func (suite *RiskServiceTestSuite) TestResetAfterPayout_ReplacesTodaySnapshot() {
	ctx := context.Background()
	newBalance := decimal.NewFromInt(100000)

	suite.mockRepo.On("DeleteSnapshotsForDay", ctx, "acc-1", suite.tradingDay).Return(int64(1), nil).Once()
	suite.mockRepo.On("SaveSnapshot", ctx, mock.MatchedBy(func(s domain.DailySnapshot) bool {
		return s.AccountID == "acc-1" &&
			s.TradingDay == suite.tradingDay &&
			s.IsPayoutReset &&
			s.StartingBalance.Equal(newBalance) &&
			s.DailyDDLevel.Equal(decimal.NewFromInt(95000))
	})).Return(nil).Once()

	snapshot, err := suite.service.ResetAfterPayout(ctx, suite.account, newBalance, "user-1")

	suite.Require().NoError(err)
	suite.True(snapshot.IsPayoutReset)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *RiskServiceTestSuite) TestResetAfterPayout_DeleteFailurePropagates() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockRepo.On("DeleteSnapshotsForDay", ctx, "acc-1", suite.tradingDay).Return(int64(0), expectedErr).Once()

	snapshot, err := suite.service.ResetAfterPayout(ctx, suite.account, decimal.NewFromInt(100000), "user-1")

	suite.Require().Error(err)
	suite.Nil(snapshot)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSnapshot", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestRiskService(t *testing.T) {
	suite.Run(t, new(RiskServiceTestSuite))
}
