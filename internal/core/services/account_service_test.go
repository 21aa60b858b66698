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
	"github.com/propledger/funded_account_app/internal/dto"
)

// --- Test Suite ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	fixedNow time.Time
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewAccountService(
		suite.mockRepo,
		testFirmTemplate(),
		services.WithAccountClock(func() time.Time { return suite.fixedNow }),
	)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultsToEval1Template() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:      "Challenge 100k",
		Principal: decimal.NewFromInt(100000),
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Phase == domain.PhaseEval1 &&
			a.Status == domain.StatusActive &&
			a.CurrentBalance.Equal(a.Principal) &&
			a.MaxDrawdownPct.Equal(decimal.NewFromInt(10)) &&
			a.DailyDrawdownPct.Equal(decimal.NewFromInt(5)) &&
			a.ProfitTargetPct.Equal(decimal.NewFromInt(8)) &&
			a.ProfitTargetAmount.Equal(decimal.NewFromInt(8000)) &&
			a.ProfitSharePct.IsZero() &&
			a.CreatedBy == "user-1"
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(domain.PhaseEval1, account.Phase)
	suite.True(account.CurrentBalance.Equal(decimal.NewFromInt(100000)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_FundedGetsShareNoTarget() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:      "Live",
		Principal: decimal.NewFromInt(10000),
		Phase:     domain.PhaseFunded,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Phase == domain.PhaseFunded &&
			a.ProfitTargetPct.IsZero() &&
			a.ProfitTargetAmount.IsZero() &&
			a.ProfitSharePct.Equal(decimal.NewFromInt(80))
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.PhaseFunded, account.Phase)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_TemplateOverrides() {
	ctx := context.Background()
	maxDD := decimal.NewFromInt(12)
	target := decimal.NewFromInt(6)
	req := dto.CreateAccountRequest{
		Name:            "Custom",
		Principal:       decimal.NewFromInt(50000),
		MaxDrawdownPct:  &maxDD,
		ProfitTargetPct: &target,
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.MaxDrawdownPct.Equal(maxDD) &&
			a.ProfitTargetPct.Equal(target) &&
			a.ProfitTargetAmount.Equal(decimal.NewFromInt(3000))
	})).Return(nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NonPositivePrincipalRejected() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:      "Broke",
		Principal: decimal.Zero,
	}

	account, err := suite.service.CreateAccount(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindAccountByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, "missing")

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_NilBecomesEmptySlice() {
	ctx := context.Background()

	suite.mockRepo.On("ListAccounts", ctx, 20, 0).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, 20, 0)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_VerifiesExistenceFirst() {
	ctx := context.Background()

	suite.mockRepo.On("FindAccountByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteAccount(ctx, "missing", "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccountData", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: "acc-1", Status: domain.StatusActive}

	suite.mockRepo.On("FindAccountByID", ctx, "acc-1").Return(existing, nil).Once()
	suite.mockRepo.On("DeleteAccountData", ctx, "acc-1", "user-1", suite.fixedNow).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, "acc-1", "user-1")

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_RepoError() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: "acc-1"}
	expectedErr := assert.AnError

	suite.mockRepo.On("FindAccountByID", ctx, "acc-1").Return(existing, nil).Once()
	suite.mockRepo.On("DeleteAccountData", ctx, "acc-1", "user-1", suite.fixedNow).Return(expectedErr).Once()

	err := suite.service.DeleteAccount(ctx, "acc-1", "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
