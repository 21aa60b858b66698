package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propledger/funded_account_app/internal/apperrors"
	"github.com/propledger/funded_account_app/internal/core/domain"
	portssvc "github.com/propledger/funded_account_app/internal/core/ports/services"
	"github.com/propledger/funded_account_app/internal/dto"
	"github.com/propledger/funded_account_app/internal/handlers"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock RiskService ---
type MockRiskService struct {
	mock.Mock
}

func (m *MockRiskService) EnsureSnapshot(ctx context.Context, account *domain.Account, userID string) (*domain.DailySnapshot, error) {
	args := m.Called(ctx, account, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailySnapshot), args.Error(1)
}
func (m *MockRiskService) DailyDDLevel(ctx context.Context, account *domain.Account, userID string) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, account, userID)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}
func (m *MockRiskService) DailyPnL(ctx context.Context, account *domain.Account) (decimal.Decimal, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockRiskService) IsMaxBreached(account *domain.Account) bool {
	args := m.Called(account)
	return args.Bool(0)
}
func (m *MockRiskService) IsDailyBreached(account *domain.Account) bool {
	args := m.Called(account)
	return args.Bool(0)
}
func (m *MockRiskService) ResetAfterPayout(ctx context.Context, account *domain.Account, newBalance decimal.Decimal, userID string) (*domain.DailySnapshot, error) {
	args := m.Called(ctx, account, newBalance, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailySnapshot), args.Error(1)
}

var _ portssvc.RiskSvcFacade = (*MockRiskService)(nil)

// --- Mock ProgressionService ---
type MockProgressionService struct {
	mock.Mock
}

func (m *MockProgressionService) CanUpgrade(account *domain.Account) bool {
	args := m.Called(account)
	return args.Bool(0)
}
func (m *MockProgressionService) Upgrade(ctx context.Context, accountID string, userID string) (*domain.Account, *domain.Account, error) {
	args := m.Called(ctx, accountID, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Account), args.Get(1).(*domain.Account), args.Error(2)
}
func (m *MockProgressionService) ListUnfinishedOperations(ctx context.Context, accountID string) ([]domain.OperationSaga, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OperationSaga), args.Error(1)
}

var _ portssvc.ProgressionSvcFacade = (*MockProgressionService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockAccountService     *MockAccountService
	mockRiskService        *MockRiskService
	mockProgressionService *MockProgressionService
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.mockAccountService = new(MockAccountService)
	suite.mockRiskService = new(MockRiskService)
	suite.mockProgressionService = new(MockProgressionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterAccountRoutes(v1, suite.mockAccountService, suite.mockRiskService, suite.mockProgressionService)
}

func testAccount(accountID string) *domain.Account {
	return &domain.Account{
		AccountID:        accountID,
		Name:             "100k Challenge",
		Phase:            domain.PhaseEval1,
		Status:           domain.StatusActive,
		Principal:        decimal.NewFromInt(100000),
		CurrentBalance:   decimal.NewFromInt(102000),
		MaxDrawdownPct:   decimal.NewFromInt(10),
		DailyDrawdownPct: decimal.NewFromInt(5),
		ProfitTargetPct:  decimal.NewFromInt(8),
		AuditFields: domain.AuditFields{
			CreatedAt:     time.Now(),
			CreatedBy:     "user-1",
			LastUpdatedAt: time.Now(),
			LastUpdatedBy: "user-1",
		},
	}
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	accountID := uuid.NewString()
	created := testAccount(accountID)

	suite.mockAccountService.On("CreateAccount",
		mock.Anything,
		mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
			return req.Name == "100k Challenge" && req.Principal.Equal(decimal.NewFromInt(100000))
		}),
		"user-1",
	).Return(created, nil).Once()

	body, _ := json.Marshal(map[string]any{
		"name":      "100k Challenge",
		"principal": "100000",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-1")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var responseBody dto.AccountResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(accountID, responseBody.AccountID)
	suite.Equal(domain.PhaseEval1, responseBody.Phase)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_ValidationError() {
	suite.mockAccountService.On("CreateAccount", mock.Anything, mock.Anything, "system").
		Return(nil, fmt.Errorf("principal must be positive: %w", apperrors.ErrValidation)).Once()

	body, _ := json.Marshal(map[string]any{
		"name":      "Broke",
		"principal": "-5",
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccountByID_NotFound() {
	accountID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetRiskStatus_Success() {
	accountID := uuid.NewString()
	account := testAccount(accountID)

	suite.mockAccountService.On("GetAccountByID", mock.Anything, accountID).
		Return(account, nil).Once()
	suite.mockRiskService.On("DailyDDLevel", mock.Anything, account, "system").
		Return(decimal.NewFromInt(97000), false, nil).Once()
	suite.mockRiskService.On("DailyPnL", mock.Anything, account).
		Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockRiskService.On("IsMaxBreached", account).Return(false).Once()

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/accounts/%s/risk", accountID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody dto.RiskStatusResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(accountID, responseBody.AccountID)
	suite.True(responseBody.DailyDDLevel.Equal(decimal.NewFromInt(97000)))
	suite.False(responseBody.Degraded)
	suite.True(responseBody.DailyPnL.Equal(decimal.NewFromInt(1000)))
	suite.False(responseBody.MaxBreached)
	suite.mockRiskService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestUpgradeAccount_NotEligible() {
	accountID := uuid.NewString()

	suite.mockProgressionService.On("Upgrade", mock.Anything, accountID, "system").
		Return(nil, nil, fmt.Errorf("account not eligible for upgrade: %w", apperrors.ErrValidation)).Once()

	req, _ := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/accounts/%s/upgrade", accountID), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockProgressionService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_Success() {
	accountID := uuid.NewString()

	suite.mockAccountService.On("DeleteAccount", mock.Anything, accountID, "user-1").
		Return(nil).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, nil)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

// TODO: Add tests for other scenarios:
// - Store unavailable (503) paths
// - Partially committed upgrade (ErrPartialSequence)
// - Invalid pagination query params on list

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
