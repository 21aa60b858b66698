package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/propledger/funded_account_app/internal/apperrors"
	"github.com/propledger/funded_account_app/internal/core/domain"
	portsrepo "github.com/propledger/funded_account_app/internal/core/ports/repositories"
	portssvc "github.com/propledger/funded_account_app/internal/core/ports/services"
)

// payoutServiceImpl implements the PayoutSvcFacade interface
type payoutServiceImpl struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	payoutRepo  portsrepo.PayoutRepository
	sagas       sagaTracker
	riskSvc     portssvc.RiskSvcFacade
	activity    portssvc.ActivityLogger
	now         func() time.Time
}

// PayoutServiceOption is a functional option for configuring the payout service
type PayoutServiceOption func(*payoutServiceImpl)

// WithPayoutClock overrides the service clock
func WithPayoutClock(now func() time.Time) PayoutServiceOption {
	return func(s *payoutServiceImpl) {
		s.now = now
	}
}

// NewPayoutService creates a new payout service with the provided options
func NewPayoutService(
	accountRepo portsrepo.AccountRepositoryFacade,
	payoutRepo portsrepo.PayoutRepository,
	sagaRepo portsrepo.SagaRepository,
	riskSvc portssvc.RiskSvcFacade,
	activity portssvc.ActivityLogger,
	options ...PayoutServiceOption,
) portssvc.PayoutSvcFacade {
	svc := &payoutServiceImpl{
		accountRepo: accountRepo,
		payoutRepo:  payoutRepo,
		riskSvc:     riskSvc,
		activity:    activity,
		now:         time.Now,
	}

	for _, option := range options {
		option(svc)
	}
	svc.sagas = newSagaTracker(sagaRepo, svc.now)

	return svc
}

// Ensure payoutServiceImpl implements the PayoutSvcFacade interface
var _ portssvc.PayoutSvcFacade = (*payoutServiceImpl)(nil)

func (s *payoutServiceImpl) AvailablePayout(ctx context.Context, accountID string) (*domain.PayoutBreakdown, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	breakdown := domain.BreakdownFor(account.CurrentBalance, account.Principal, account.ProfitSharePct)
	return &breakdown, nil
}

// RequestPayout runs the three-step record-reset-snapshot sequence. All
// validation happens before the first write; after that each step commits
// independently under the saga record.
func (s *payoutServiceImpl) RequestPayout(ctx context.Context, accountID string, amount decimal.Decimal, userID string) (*domain.Payout, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if account.Phase != domain.PhaseFunded {
		return nil, fmt.Errorf("payout requires a funded account, got phase %s: %w", account.Phase, apperrors.ErrValidation)
	}

	breakdown := domain.BreakdownFor(account.CurrentBalance, account.Principal, account.ProfitSharePct)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("payout amount must be positive: %w", apperrors.ErrValidation)
	}
	if amount.GreaterThan(breakdown.Available) {
		return nil, fmt.Errorf("payout amount %s exceeds available %s: %w", amount, breakdown.Available, apperrors.ErrValidation)
	}

	now := s.now()
	saga, err := s.sagas.begin(ctx, domain.SagaPayout, accountID, 3)
	if err != nil {
		return nil, err
	}

	payout := domain.Payout{
		PayoutID:           ulid.Make().String(),
		AccountID:          accountID,
		PayoutAmount:       amount,
		OldBalance:         account.CurrentBalance,
		NewBalance:         account.Principal,
		ProfitShareApplied: account.ProfitSharePct,
		RequestedAt:        now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// Step 1: write the immutable payout record.
	if err := s.payoutRepo.SavePayout(ctx, payout); err != nil {
		s.sagas.fail(ctx, saga, "save payout record failed: "+err.Error())
		return nil, err
	}
	s.sagas.advance(ctx, &saga, 1)

	// Step 2: reset the account balance to principal.
	before := domain.StateOf(*account)
	account.CurrentBalance = account.Principal
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.sagas.fail(ctx, saga, "balance reset failed: "+err.Error())
		s.LogError(ctx, err, "Payout recorded but balance not reset",
			slog.String("account_id", accountID),
			slog.String("payout_id", payout.PayoutID),
			slog.String("saga_id", saga.SagaID))
		return nil, fmt.Errorf("payout %s committed step 1 of 3: %w", payout.PayoutID, apperrors.ErrPartialSequence)
	}
	s.sagas.advance(ctx, &saga, 2)

	// Step 3: force the daily snapshot reset.
	if _, err := s.riskSvc.ResetAfterPayout(ctx, account, account.CurrentBalance, userID); err != nil {
		s.sagas.fail(ctx, saga, "snapshot reset failed: "+err.Error())
		s.LogError(ctx, err, "Payout executed but snapshot not reset",
			slog.String("account_id", accountID),
			slog.String("payout_id", payout.PayoutID),
			slog.String("saga_id", saga.SagaID))
		return nil, fmt.Errorf("payout %s committed step 2 of 3: %w", payout.PayoutID, apperrors.ErrPartialSequence)
	}
	s.sagas.complete(ctx, &saga)

	s.activity.Record(ctx, domain.ActivityEvent{
		EventID:    ulid.Make().String(),
		Type:       domain.EventPayout,
		AccountID:  accountID,
		Before:     before,
		After:      domain.StateOf(*account),
		Reason:     fmt.Sprintf("payout of %s at %s%% profit share", amount, account.ProfitSharePct),
		OccurredAt: now,
	})

	s.LogInfo(ctx, "Payout executed",
		slog.String("account_id", accountID),
		slog.String("payout_id", payout.PayoutID),
		slog.String("amount", amount.String()))
	return &payout, nil
}

func (s *payoutServiceImpl) ListPayouts(ctx context.Context, accountID string) ([]domain.Payout, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	payouts, err := s.payoutRepo.ListPayoutsByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payouts",
			slog.String("account_id", accountID))
		return nil, err
	}
	if payouts == nil {
		return []domain.Payout{}, nil
	}
	return payouts, nil
}
