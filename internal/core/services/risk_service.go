package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/propledger/funded_account_app/internal/apperrors"
	"github.com/propledger/funded_account_app/internal/core/domain"
	portsrepo "github.com/propledger/funded_account_app/internal/core/ports/repositories"
	portssvc "github.com/propledger/funded_account_app/internal/core/ports/services"
)

// riskServiceImpl implements the RiskSvcFacade interface
type riskServiceImpl struct {
	BaseService
	snapshotRepo portsrepo.SnapshotRepositoryFacade
	now          func() time.Time
}

// RiskServiceOption is a functional option for configuring the risk service
type RiskServiceOption func(*riskServiceImpl)

// WithRiskClock overrides the service clock
func WithRiskClock(now func() time.Time) RiskServiceOption {
	return func(s *riskServiceImpl) {
		s.now = now
	}
}

// NewRiskService creates a new risk service with the provided options
func NewRiskService(snapshotRepo portsrepo.SnapshotRepositoryFacade, options ...RiskServiceOption) portssvc.RiskSvcFacade {
	svc := &riskServiceImpl{
		snapshotRepo: snapshotRepo,
		now:          time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure riskServiceImpl implements the RiskSvcFacade interface
var _ portssvc.RiskSvcFacade = (*riskServiceImpl)(nil)

func (s *riskServiceImpl) EnsureSnapshot(ctx context.Context, account *domain.Account, userID string) (*domain.DailySnapshot, error) {
	now := s.now()
	tradingDay := domain.TradingDayOf(now)

	existing, err := s.snapshotRepo.FindSnapshot(ctx, account.AccountID, tradingDay)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	snapshot := domain.DailySnapshot{
		SnapshotID:      ulid.Make().String(),
		AccountID:       account.AccountID,
		TradingDay:      tradingDay,
		StartingBalance: account.CurrentBalance,
		DailyDDLevel:    domain.DailyDDLevelFor(account.CurrentBalance, account.Principal, account.DailyDrawdownPct),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.snapshotRepo.SaveSnapshot(ctx, snapshot); err != nil {
		// A concurrent caller may have created the day's snapshot between
		// the lookup and the insert; the existing one wins.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.snapshotRepo.FindSnapshot(ctx, account.AccountID, tradingDay)
		}
		s.LogError(ctx, err, "Failed to save daily snapshot",
			slog.String("account_id", account.AccountID),
			slog.String("trading_day", tradingDay))
		return nil, err
	}

	s.LogInfo(ctx, "Daily snapshot created",
		slog.String("account_id", account.AccountID),
		slog.String("trading_day", tradingDay),
		slog.String("starting_balance", snapshot.StartingBalance.String()))
	return &snapshot, nil
}

func (s *riskServiceImpl) DailyDDLevel(ctx context.Context, account *domain.Account, userID string) (decimal.Decimal, bool, error) {
	snapshot, err := s.EnsureSnapshot(ctx, account, userID)
	if err == nil {
		return snapshot.DailyDDLevel, false, nil
	}

	// Degraded-accuracy fallback: computed from the live balance rather
	// than the day-start balance, so it drifts once trades occur. Flagged
	// to the caller and logged so it is distinguishable from the
	// snapshot-backed value.
	level := domain.DailyDDLevelFor(account.CurrentBalance, account.Principal, account.DailyDrawdownPct)
	s.LogWarn(ctx, "Daily DD level computed from stateless fallback",
		slog.String("account_id", account.AccountID),
		slog.String("error", err.Error()),
		slog.String("fallback_level", level.String()))
	return level, true, nil
}

func (s *riskServiceImpl) DailyPnL(ctx context.Context, account *domain.Account) (decimal.Decimal, error) {
	tradingDay := domain.TradingDayOf(s.now())

	snapshot, err := s.snapshotRepo.FindSnapshot(ctx, account.AccountID, tradingDay)
	if err != nil {
		// No snapshot means no activity yet today.
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return account.CurrentBalance.Sub(snapshot.StartingBalance), nil
}

func (s *riskServiceImpl) IsMaxBreached(account *domain.Account) bool {
	return account.IsMaxBreached()
}

// IsDailyBreached always reports false. Detecting an intraday dip below the
// daily DD level would need low/high tracking that the trade ledger does not
// carry; the level is exposed for display but never triggers a breach.
func (s *riskServiceImpl) IsDailyBreached(account *domain.Account) bool {
	return false
}

func (s *riskServiceImpl) ResetAfterPayout(ctx context.Context, account *domain.Account, newBalance decimal.Decimal, userID string) (*domain.DailySnapshot, error) {
	now := s.now()
	tradingDay := domain.TradingDayOf(now)

	deleted, err := s.snapshotRepo.DeleteSnapshotsForDay(ctx, account.AccountID, tradingDay)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete snapshots for payout reset",
			slog.String("account_id", account.AccountID),
			slog.String("trading_day", tradingDay))
		return nil, err
	}

	snapshot := domain.DailySnapshot{
		SnapshotID:      ulid.Make().String(),
		AccountID:       account.AccountID,
		TradingDay:      tradingDay,
		StartingBalance: newBalance,
		DailyDDLevel:    domain.DailyDDLevelFor(newBalance, account.Principal, account.DailyDrawdownPct),
		IsPayoutReset:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.snapshotRepo.SaveSnapshot(ctx, snapshot); err != nil {
		s.LogError(ctx, err, "Failed to save payout-reset snapshot",
			slog.String("account_id", account.AccountID),
			slog.String("trading_day", tradingDay))
		return nil, err
	}

	s.LogInfo(ctx, "Daily snapshot reset after payout",
		slog.String("account_id", account.AccountID),
		slog.String("trading_day", tradingDay),
		slog.Int64("snapshots_replaced", deleted),
		slog.String("starting_balance", newBalance.String()))
	return &snapshot, nil
}
