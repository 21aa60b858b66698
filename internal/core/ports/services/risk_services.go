package services

import (
	"context"

	"github.com/propledger/funded_account_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RiskSvcFacade combines the daily snapshot lifecycle with breach detection.
type RiskSvcFacade interface {
	// EnsureSnapshot returns the snapshot for the account's current trading
	// day, creating one from the account's current balance if absent.
	// Idempotent: a second call within the same trading day returns the
	// existing snapshot unchanged.
	EnsureSnapshot(ctx context.Context, account *domain.Account, userID string) (*domain.DailySnapshot, error)

	// DailyDDLevel returns the daily drawdown floor for the current trading
	// day. When the snapshot store is unavailable it falls back to the
	// stateless computation currentBalance - principal*dailyDrawdownPct/100
	// and reports degraded=true so callers can tell the two apart.
	DailyDDLevel(ctx context.Context, account *domain.Account, userID string) (level decimal.Decimal, degraded bool, err error)

	// DailyPnL returns currentBalance minus the day's starting balance, or
	// zero when no snapshot exists yet ("no activity today").
	DailyPnL(ctx context.Context, account *domain.Account) (decimal.Decimal, error)

	// IsMaxBreached reports whether the account violates its max-drawdown
	// limit at its current balance.
	IsMaxBreached(account *domain.Account) bool

	// IsDailyBreached always reports false: daily-drawdown breach detection
	// needs intraday low tracking that is not part of the data model.
	IsDailyBreached(account *domain.Account) bool

	// ResetAfterPayout deletes any snapshot for the current trading day and
	// creates exactly one flagged isPayoutReset with the post-payout
	// balance. The only sanctioned same-day snapshot rewrite.
	ResetAfterPayout(ctx context.Context, account *domain.Account, newBalance decimal.Decimal, userID string) (*domain.DailySnapshot, error)
}
