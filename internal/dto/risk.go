package dto

import (
	"github.com/shopspring/decimal"
)

// RiskStatusResponse reports the risk state of an account for the current
// trading day. Degraded is true when the daily DD level came from the
// stateless fallback instead of the day's snapshot.
type RiskStatusResponse struct {
	AccountID    string          `json:"accountID"`
	TradingDay   string          `json:"tradingDay"`
	DailyDDLevel decimal.Decimal `json:"dailyDDLevel"`
	Degraded     bool            `json:"degraded"`
	DailyPnL     decimal.Decimal `json:"dailyPnL"`
	MaxBreached  bool            `json:"maxBreached"`
}
