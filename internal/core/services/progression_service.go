package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/propledger/funded_account_app/internal/apperrors"
	"github.com/propledger/funded_account_app/internal/core/domain"
	portsrepo "github.com/propledger/funded_account_app/internal/core/ports/repositories"
	portssvc "github.com/propledger/funded_account_app/internal/core/ports/services"
	"github.com/propledger/funded_account_app/internal/platform/config"
)

// progressionServiceImpl implements the ProgressionSvcFacade interface
type progressionServiceImpl struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	sagas       sagaTracker
	activity    portssvc.ActivityLogger
	firm        config.FirmTemplate
	now         func() time.Time
}

// ProgressionServiceOption is a functional option for configuring the progression service
type ProgressionServiceOption func(*progressionServiceImpl)

// WithProgressionClock overrides the service clock
func WithProgressionClock(now func() time.Time) ProgressionServiceOption {
	return func(s *progressionServiceImpl) {
		s.now = now
	}
}

// NewProgressionService creates a new progression service with the provided options
func NewProgressionService(
	accountRepo portsrepo.AccountRepositoryFacade,
	sagaRepo portsrepo.SagaRepository,
	activity portssvc.ActivityLogger,
	firm config.FirmTemplate,
	options ...ProgressionServiceOption,
) portssvc.ProgressionSvcFacade {
	svc := &progressionServiceImpl{
		accountRepo: accountRepo,
		activity:    activity,
		firm:        firm,
		now:         time.Now,
	}

	for _, option := range options {
		option(svc)
	}
	svc.sagas = newSagaTracker(sagaRepo, svc.now)

	return svc
}

// Ensure progressionServiceImpl implements the ProgressionSvcFacade interface
var _ portssvc.ProgressionSvcFacade = (*progressionServiceImpl)(nil)

func (s *progressionServiceImpl) CanUpgrade(account *domain.Account) bool {
	return account.Status == domain.StatusActive &&
		account.Phase != domain.PhaseFunded &&
		account.Profit().GreaterThanOrEqual(account.ProfitTargetAmount)
}

// Upgrade runs the two-step create-then-retire sequence. The steps commit
// independently; the saga row records how far the sequence got so a failure
// between them (orphan new account, source still active) is observable.
func (s *progressionServiceImpl) Upgrade(ctx context.Context, accountID string, userID string) (*domain.Account, *domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}

	if !s.CanUpgrade(account) {
		s.LogWarn(ctx, "Account not eligible for upgrade",
			slog.String("account_id", accountID),
			slog.String("status", string(account.Status)),
			slog.String("phase", string(account.Phase)),
			slog.String("profit", account.Profit().String()))
		return nil, nil, fmt.Errorf("account %s is not eligible for upgrade: %w", accountID, apperrors.ErrValidation)
	}

	nextPhase, _ := account.Phase.Next()
	now := s.now()

	saga, err := s.sagas.begin(ctx, domain.SagaUpgrade, accountID, 2)
	if err != nil {
		return nil, nil, err
	}

	newAccount := s.spawnUpgraded(*account, nextPhase, userID, now)

	// Step 1: create the next-phase account.
	if err := s.accountRepo.SaveAccount(ctx, newAccount); err != nil {
		s.sagas.fail(ctx, saga, "create new account failed: "+err.Error())
		return nil, nil, err
	}
	s.sagas.advance(ctx, &saga, 1)

	// Step 2: retire the source account.
	before := domain.StateOf(*account)
	account.Status = domain.StatusUpgraded
	account.UpgradedTo = newAccount.AccountID
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		// The new account exists but the source was not retired. Surface
		// the partial sequence; the saga row points at the orphan.
		s.sagas.fail(ctx, saga, "retire source account failed: "+err.Error())
		s.LogError(ctx, err, "Upgrade left orphan account",
			slog.String("account_id", accountID),
			slog.String("new_account_id", newAccount.AccountID),
			slog.String("saga_id", saga.SagaID))
		return nil, nil, fmt.Errorf("upgrade of %s committed step 1 of 2 (new account %s): %w", accountID, newAccount.AccountID, apperrors.ErrPartialSequence)
	}
	s.sagas.complete(ctx, &saga)

	s.activity.Record(ctx, domain.ActivityEvent{
		EventID:    ulid.Make().String(),
		Type:       domain.EventUpgraded,
		AccountID:  accountID,
		Before:     before,
		After:      domain.StateOf(*account),
		Reason:     fmt.Sprintf("upgraded to %s as account %s", nextPhase, newAccount.AccountID),
		OccurredAt: now,
	})

	s.LogInfo(ctx, "Account upgraded",
		slog.String("account_id", accountID),
		slog.String("new_account_id", newAccount.AccountID),
		slog.String("new_phase", string(nextPhase)))
	return &newAccount, account, nil
}

// spawnUpgraded builds the next-phase account: principal carried over,
// balance fully reset, parameters from the firm template.
func (s *progressionServiceImpl) spawnUpgraded(source domain.Account, phase domain.AccountPhase, userID string, now time.Time) domain.Account {
	account := domain.Account{
		AccountID:        uuid.NewString(),
		Name:             source.Name,
		Phase:            phase,
		Status:           domain.StatusActive,
		Principal:        source.Principal,
		CurrentBalance:   source.Principal,
		MaxDrawdownPct:   source.MaxDrawdownPct,
		DailyDrawdownPct: source.DailyDrawdownPct,
		UpgradedFrom:     source.AccountID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if phase == domain.PhaseFunded {
		account.ProfitTargetPct = decimal.Zero
		account.ProfitTargetAmount = decimal.Zero
		account.ProfitSharePct = s.firm.FundedProfitSharePct
	} else {
		account.ProfitTargetPct = s.firm.ProfitTargetPctFor(string(phase))
		account.ProfitTargetAmount = account.Principal.Mul(account.ProfitTargetPct).Div(decimal.NewFromInt(100))
		account.ProfitSharePct = decimal.Zero
	}
	return account
}

func (s *progressionServiceImpl) ListUnfinishedOperations(ctx context.Context, accountID string) ([]domain.OperationSaga, error) {
	sagas, err := s.sagas.unfinishedFor(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unfinished operations",
			slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list unfinished operations: %w", err)
	}

	if sagas == nil {
		return []domain.OperationSaga{}, nil
	}
	return sagas, nil
}
