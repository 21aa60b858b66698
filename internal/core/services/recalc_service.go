package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/propledger/funded_account_app/internal/core/domain"
	portsrepo "github.com/propledger/funded_account_app/internal/core/ports/repositories"
	portssvc "github.com/propledger/funded_account_app/internal/core/ports/services"
)

// recalcServiceImpl implements the Recalculator interface by full ledger
// replay. Every trade mutation pays the O(n) scan; the simplicity of a single
// authoritative derivation is deliberate.
type recalcServiceImpl struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	tradeRepo   portsrepo.TradeReader
	activity    portssvc.ActivityLogger
	now         func() time.Time
}

// RecalcServiceOption is a functional option for configuring the recalculator
type RecalcServiceOption func(*recalcServiceImpl)

// WithRecalcClock overrides the service clock
func WithRecalcClock(now func() time.Time) RecalcServiceOption {
	return func(s *recalcServiceImpl) {
		s.now = now
	}
}

// NewRecalcService creates a new balance recalculator
func NewRecalcService(accountRepo portsrepo.AccountRepositoryFacade, tradeRepo portsrepo.TradeReader, activity portssvc.ActivityLogger, options ...RecalcServiceOption) portssvc.Recalculator {
	svc := &recalcServiceImpl{
		accountRepo: accountRepo,
		tradeRepo:   tradeRepo,
		activity:    activity,
		now:         time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure recalcServiceImpl implements the Recalculator interface
var _ portssvc.Recalculator = (*recalcServiceImpl)(nil)

func (s *recalcServiceImpl) Recalculate(ctx context.Context, accountID string, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	trades, err := s.tradeRepo.ListTradesByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger for recalculation",
			slog.String("account_id", accountID))
		return nil, err
	}

	// The store guarantees no ordering; replay order is execution time,
	// with the time-ordered trade ID as tie-break.
	sortTradesByExecution(trades)

	before := domain.StateOf(*account)

	if len(trades) == 0 {
		account.CurrentBalance = account.Principal
	} else {
		account.CurrentBalance = trades[len(trades)-1].NewBalance
	}

	// Breach is terminal on the status dimension: only an ACTIVE account
	// can transition, and nothing here ever transitions back.
	newlyBreached := account.Status == domain.StatusActive && account.IsMaxBreached()
	if newlyBreached {
		account.Status = domain.StatusBreached
	}

	now := s.now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to persist recalculated balance",
			slog.String("account_id", accountID))
		return nil, err
	}

	if newlyBreached {
		s.LogWarn(ctx, "Account breached max drawdown",
			slog.String("account_id", accountID),
			slog.String("current_balance", account.CurrentBalance.String()),
			slog.String("max_drawdown_amount", account.MaxDrawdownAmount().String()))
		s.activity.Record(ctx, domain.ActivityEvent{
			EventID:    ulid.Make().String(),
			Type:       domain.EventBreached,
			AccountID:  accountID,
			Before:     before,
			After:      domain.StateOf(*account),
			Reason:     "balance fell below max drawdown level",
			OccurredAt: now,
		})
	}

	s.LogDebug(ctx, "Ledger replayed",
		slog.String("account_id", accountID),
		slog.Int("trade_count", len(trades)),
		slog.String("current_balance", account.CurrentBalance.String()))
	return account, nil
}
