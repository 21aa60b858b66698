package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payout is the storage representation of a payout history record.
type Payout struct {
	PayoutID           string          `db:"payout_id"`
	AccountID          string          `db:"account_id"`
	PayoutAmount       decimal.Decimal `db:"payout_amount"`
	OldBalance         decimal.Decimal `db:"old_balance"`
	NewBalance         decimal.Decimal `db:"new_balance"`
	ProfitShareApplied decimal.Decimal `db:"profit_share_applied"`
	RequestedAt        time.Time       `db:"requested_at"`
	AuditFields
}
