package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is the storage representation of one ledger entry. The PnL is never
// persisted; it is always derived from the balance pair.
type Trade struct {
	TradeID    string          `db:"trade_id"`
	AccountID  string          `db:"account_id"`
	Instrument string          `db:"instrument"` // Nullable
	TradeType  string          `db:"trade_type"` // Nullable
	OldBalance decimal.Decimal `db:"old_balance"`
	NewBalance decimal.Decimal `db:"new_balance"`
	ExecutedAt time.Time       `db:"executed_at"`
	Notes      string          `db:"notes"` // Nullable
	AuditFields
}
