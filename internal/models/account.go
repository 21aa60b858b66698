package models

import (
	"github.com/shopspring/decimal"
)

// AccountPhase mirrors domain.AccountPhase at the storage layer.
type AccountPhase string

// AccountStatus mirrors domain.AccountStatus at the storage layer.
type AccountStatus string

// Account is the storage representation of a funded-trading account.
// UpgradedFrom/UpgradedTo use string for nullable foreign keys.
type Account struct {
	AccountID          string          `db:"account_id"`
	Name               string          `db:"name"`
	Phase              AccountPhase    `db:"phase"`
	Status             AccountStatus   `db:"status"`
	Principal          decimal.Decimal `db:"principal"`
	CurrentBalance     decimal.Decimal `db:"current_balance"`
	MaxDrawdownPct     decimal.Decimal `db:"max_drawdown_pct"`
	DailyDrawdownPct   decimal.Decimal `db:"daily_drawdown_pct"`
	ProfitTargetPct    decimal.Decimal `db:"profit_target_pct"`
	ProfitTargetAmount decimal.Decimal `db:"profit_target_amount"`
	ProfitSharePct     decimal.Decimal `db:"profit_share_pct"`
	UpgradedFrom       string          `db:"upgraded_from"` // Nullable
	UpgradedTo         string          `db:"upgraded_to"`   // Nullable
	AuditFields
}
