package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propledger/funded_account_app/internal/apperrors"
	"github.com/propledger/funded_account_app/internal/core/domain"
	portsrepo "github.com/propledger/funded_account_app/internal/core/ports/repositories"
	portssvc "github.com/propledger/funded_account_app/internal/core/ports/services"
	"github.com/propledger/funded_account_app/internal/dto"
	"github.com/propledger/funded_account_app/internal/platform/config"
)

// accountServiceImpl implements the AccountSvcFacade interface
type accountServiceImpl struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	firm        config.FirmTemplate
	now         func() time.Time
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountServiceImpl)

// WithAccountClock overrides the service clock
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountServiceImpl) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, firm config.FirmTemplate, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountServiceImpl{
		accountRepo: repo,
		firm:        firm,
		now:         time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountServiceImpl implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountServiceImpl)(nil)

func (s *accountServiceImpl) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if req.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("principal must be positive: %w", apperrors.ErrValidation)
	}

	phase := req.Phase
	if phase == "" {
		phase = domain.PhaseEval1
	}

	account := domain.Account{
		AccountID:      uuid.NewString(),
		Name:           req.Name,
		Phase:          phase,
		Status:         domain.StatusActive,
		Principal:      req.Principal,
		CurrentBalance: req.Principal,
	}
	s.applyTemplate(&account, req)

	now := s.now()
	account.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("phase", string(account.Phase)),
		slog.String("principal", account.Principal.String()))
	return &account, nil
}

// applyTemplate fills the percentage parameters from the firm template,
// honoring request overrides. Funded accounts carry a profit share and no
// target; evaluation accounts the inverse.
func (s *accountServiceImpl) applyTemplate(account *domain.Account, req dto.CreateAccountRequest) {
	account.MaxDrawdownPct = s.firm.MaxDrawdownPct
	if req.MaxDrawdownPct != nil {
		account.MaxDrawdownPct = *req.MaxDrawdownPct
	}
	account.DailyDrawdownPct = s.firm.DailyDrawdownPct
	if req.DailyDrawdownPct != nil {
		account.DailyDrawdownPct = *req.DailyDrawdownPct
	}

	if account.Phase == domain.PhaseFunded {
		account.ProfitTargetPct = decimal.Zero
		account.ProfitTargetAmount = decimal.Zero
		account.ProfitSharePct = s.firm.FundedProfitSharePct
		if req.ProfitSharePct != nil {
			account.ProfitSharePct = *req.ProfitSharePct
		}
		return
	}

	account.ProfitTargetPct = s.firm.ProfitTargetPctFor(string(account.Phase))
	if req.ProfitTargetPct != nil {
		account.ProfitTargetPct = *req.ProfitTargetPct
	}
	account.ProfitTargetAmount = account.Principal.Mul(account.ProfitTargetPct).Div(decimal.NewFromInt(100))
	account.ProfitSharePct = decimal.Zero
}

func (s *accountServiceImpl) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err // Propagate error (including NotFound)
	}
	return account, nil
}

func (s *accountServiceImpl) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.Int("limit", limit),
			slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if accounts == nil {
		return []domain.Account{}, nil // Return empty slice if repo returns nil
	}
	return accounts, nil
}

func (s *accountServiceImpl) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	// Verify the account exists before the bulk delete
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeleteAccountData(ctx, accountID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to bulk-delete account",
			slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account and associated data deleted",
		slog.String("account_id", accountID))
	return nil
}
