package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/propledger/funded_account_app/internal/apperrors"
	"github.com/propledger/funded_account_app/internal/core/domain"
	portsrepo "github.com/propledger/funded_account_app/internal/core/ports/repositories"
	portssvc "github.com/propledger/funded_account_app/internal/core/ports/services"
	"github.com/propledger/funded_account_app/internal/dto"
)

// tradeServiceImpl implements the TradeSvcFacade interface
type tradeServiceImpl struct {
	BaseService
	tradeRepo    portsrepo.TradeRepositoryFacade
	accountRepo  portsrepo.AccountReader
	riskSvc      portssvc.RiskSvcFacade
	recalculator portssvc.Recalculator
	activity     portssvc.ActivityLogger
	now          func() time.Time
}

// TradeServiceOption is a functional option for configuring the trade service
type TradeServiceOption func(*tradeServiceImpl)

// WithTradeClock overrides the service clock
func WithTradeClock(now func() time.Time) TradeServiceOption {
	return func(s *tradeServiceImpl) {
		s.now = now
	}
}

// NewTradeService creates a new trade service with the provided options
func NewTradeService(
	tradeRepo portsrepo.TradeRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	riskSvc portssvc.RiskSvcFacade,
	recalculator portssvc.Recalculator,
	activity portssvc.ActivityLogger,
	options ...TradeServiceOption,
) portssvc.TradeSvcFacade {
	svc := &tradeServiceImpl{
		tradeRepo:    tradeRepo,
		accountRepo:  accountRepo,
		riskSvc:      riskSvc,
		recalculator: recalculator,
		activity:     activity,
		now:          time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure tradeServiceImpl implements the TradeSvcFacade interface
var _ portssvc.TradeSvcFacade = (*tradeServiceImpl)(nil)

func (s *tradeServiceImpl) AddTrade(ctx context.Context, accountID string, req dto.CreateTradeRequest, userID string) (*domain.Trade, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	// Pin the day-start balance before the ledger changes. A snapshot
	// failure is not fatal to the trade itself.
	if _, err := s.riskSvc.EnsureSnapshot(ctx, account, userID); err != nil {
		s.LogWarn(ctx, "Could not ensure daily snapshot before trade",
			slog.String("account_id", accountID),
			slog.String("error", err.Error()))
	}

	now := s.now()
	executedAt := now
	if req.ExecutedAt != nil {
		executedAt = *req.ExecutedAt
	}
	oldBalance := account.CurrentBalance
	if req.OldBalance != nil {
		oldBalance = *req.OldBalance
	}

	trade := domain.Trade{
		TradeID:    ulid.Make().String(),
		AccountID:  accountID,
		Instrument: req.Instrument,
		TradeType:  req.TradeType,
		OldBalance: oldBalance,
		NewBalance: req.NewBalance,
		ExecutedAt: executedAt,
		Notes:      req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.tradeRepo.SaveTrade(ctx, trade); err != nil {
		s.LogError(ctx, err, "Failed to save trade",
			slog.String("account_id", accountID),
			slog.String("trade_id", trade.TradeID))
		return nil, err
	}

	s.recalcAndRecord(ctx, account, domain.EventTradeAdded, "trade added to ledger", userID)

	s.LogInfo(ctx, "Trade recorded",
		slog.String("account_id", accountID),
		slog.String("trade_id", trade.TradeID),
		slog.String("pnl", trade.PnL().String()))
	return &trade, nil
}

func (s *tradeServiceImpl) EditTrade(ctx context.Context, tradeID string, req dto.UpdateTradeRequest, userID string) (*domain.Trade, error) {
	trade, err := s.tradeRepo.FindTradeByID(ctx, tradeID)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, trade.AccountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Instrument != nil {
		trade.Instrument = *req.Instrument
		updated = true
	}
	if req.TradeType != nil {
		trade.TradeType = domain.TradeType(*req.TradeType)
		updated = true
	}
	if req.OldBalance != nil {
		trade.OldBalance = *req.OldBalance
		updated = true
	}
	if req.NewBalance != nil {
		trade.NewBalance = *req.NewBalance
		updated = true
	}
	if req.ExecutedAt != nil {
		trade.ExecutedAt = *req.ExecutedAt
		updated = true
	}
	if req.Notes != nil {
		trade.Notes = *req.Notes
		updated = true
	}
	if !updated {
		return nil, fmt.Errorf("no fields provided for trade update: %w", apperrors.ErrValidation)
	}

	now := s.now()
	trade.LastUpdatedAt = now
	trade.LastUpdatedBy = userID

	if err := s.tradeRepo.UpdateTrade(ctx, *trade); err != nil {
		s.LogError(ctx, err, "Failed to update trade",
			slog.String("trade_id", tradeID))
		return nil, err
	}

	s.recalcAndRecord(ctx, account, domain.EventTradeUpdated, "trade edited", userID)

	s.LogInfo(ctx, "Trade updated",
		slog.String("account_id", trade.AccountID),
		slog.String("trade_id", tradeID))
	return trade, nil
}

func (s *tradeServiceImpl) DeleteTrade(ctx context.Context, tradeID string, userID string) error {
	trade, err := s.tradeRepo.FindTradeByID(ctx, tradeID)
	if err != nil {
		return err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, trade.AccountID)
	if err != nil {
		return err
	}

	if err := s.tradeRepo.DeleteTrade(ctx, tradeID); err != nil {
		s.LogError(ctx, err, "Failed to delete trade",
			slog.String("trade_id", tradeID))
		return err
	}

	s.recalcAndRecord(ctx, account, domain.EventTradeDeleted, "trade removed from ledger", userID)

	s.LogInfo(ctx, "Trade deleted",
		slog.String("account_id", trade.AccountID),
		slog.String("trade_id", tradeID))
	return nil
}

func (s *tradeServiceImpl) ListTrades(ctx context.Context, accountID string) ([]domain.Trade, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return nil, err
	}

	trades, err := s.tradeRepo.ListTradesByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list trades",
			slog.String("account_id", accountID))
		return nil, err
	}

	sortTradesByExecution(trades)
	return trades, nil
}

// recalcAndRecord replays the ledger after a mutation and emits the trade
// activity event. Recalculation failure is reported through the log only; the
// ledger write itself already committed.
func (s *tradeServiceImpl) recalcAndRecord(ctx context.Context, account *domain.Account, eventType domain.ActivityEventType, reason string, userID string) {
	before := domain.StateOf(*account)

	after, err := s.recalculator.Recalculate(ctx, account.AccountID, userID)
	if err != nil {
		s.LogError(ctx, err, "Balance recalculation failed after trade mutation",
			slog.String("account_id", account.AccountID))
		return
	}

	s.activity.Record(ctx, domain.ActivityEvent{
		EventID:    ulid.Make().String(),
		Type:       eventType,
		AccountID:  account.AccountID,
		Before:     before,
		After:      domain.StateOf(*after),
		Reason:     reason,
		OccurredAt: s.now(),
	})
}

// sortTradesByExecution orders trades by execution time ascending, trade ID
// as tie-break.
func sortTradesByExecution(trades []domain.Trade) {
	sort.Slice(trades, func(i, j int) bool {
		if trades[i].ExecutedAt.Equal(trades[j].ExecutedAt) {
			return trades[i].TradeID < trades[j].TradeID
		}
		return trades[i].ExecutedAt.Before(trades[j].ExecutedAt)
	})
}
