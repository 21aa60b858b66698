package domain

import (
	"github.com/shopspring/decimal"
)

// DailySnapshot captures an account's balance at the trading-day boundary and
// the daily-drawdown floor derived from it. At most one snapshot exists per
// (account, trading day); the payout reset is the only flow that deletes and
// recreates a snapshot for the same day key.
type DailySnapshot struct {
	SnapshotID      string          `json:"snapshotID"` // Primary Key (ULID)
	AccountID       string          `json:"accountID"`
	TradingDay      string          `json:"tradingDay"`      // Key from TradingDayOf, not a calendar date
	StartingBalance decimal.Decimal `json:"startingBalance"` // Day-start balance, or post-payout reset balance
	DailyDDLevel    decimal.Decimal `json:"dailyDDLevel"`    // startingBalance - principal*dailyDrawdownPct/100
	IsPayoutReset   bool            `json:"isPayoutReset"`   // Provenance marker
	IsManual        bool            `json:"isManual"`        // Provenance marker
	AuditFields
}

// DailyDDLevelFor computes the daily-drawdown floor for a trading day:
// startingBalance - principal * dailyDrawdownPct / 100.
func DailyDDLevelFor(startingBalance, principal, dailyDrawdownPct decimal.Decimal) decimal.Decimal {
	return startingBalance.Sub(principal.Mul(dailyDrawdownPct).Div(oneHundred))
}
