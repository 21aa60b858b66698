package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeType indicates the direction of a trade. Presentation-only; the
// ledger math depends solely on the balance pair.
type TradeType string

const (
	Buy  TradeType = "BUY"
	Sell TradeType = "SELL"
)

// Trade is one entry in an account's append-only ledger. The balance
// immediately before and after the trade is stored as a pair; the PnL is
// always derived from it, never stored independently.
type Trade struct {
	TradeID    string          `json:"tradeID"`    // Primary Key (ULID, time-ordered)
	AccountID  string          `json:"accountID"`  // FK -> accounts.account_id (Not Null)
	Instrument string          `json:"instrument"` // Optional, e.g. "EURUSD"
	TradeType  TradeType       `json:"tradeType"`  // Optional
	OldBalance decimal.Decimal `json:"oldBalance"` // Balance before this trade
	NewBalance decimal.Decimal `json:"newBalance"` // Balance after this trade
	ExecutedAt time.Time       `json:"executedAt"` // Event time: ordering and trading-day bucketing
	Notes      string          `json:"notes"`      // Nullable
	AuditFields
}

// PnL returns NewBalance - OldBalance.
func (t Trade) PnL() decimal.Decimal {
	return t.NewBalance.Sub(t.OldBalance)
}
