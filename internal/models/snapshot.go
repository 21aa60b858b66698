package models

import (
	"github.com/shopspring/decimal"
)

// DailySnapshot is the storage representation of a trading-day snapshot.
// (account_id, trading_day) carries a unique constraint.
type DailySnapshot struct {
	SnapshotID      string          `db:"snapshot_id"`
	AccountID       string          `db:"account_id"`
	TradingDay      string          `db:"trading_day"`
	StartingBalance decimal.Decimal `db:"starting_balance"`
	DailyDDLevel    decimal.Decimal `db:"daily_dd_level"`
	IsPayoutReset   bool            `db:"is_payout_reset"`
	IsManual        bool            `db:"is_manual"`
	AuditFields
}
