package domain

import (
	"github.com/shopspring/decimal"
)

// AccountPhase is the evaluation/funded stage of an account's lifecycle.
// Phases form an ordered progression: EVAL1 -> EVAL2 -> FUNDED.
type AccountPhase string

const (
	PhaseEval1  AccountPhase = "EVAL1"
	PhaseEval2  AccountPhase = "EVAL2"
	PhaseFunded AccountPhase = "FUNDED"
)

// Next returns the phase that follows p in the progression. ok is false when
// p is terminal (FUNDED) or unknown.
func (p AccountPhase) Next() (AccountPhase, bool) {
	switch p {
	case PhaseEval1:
		return PhaseEval2, true
	case PhaseEval2:
		return PhaseFunded, true
	default:
		return "", false
	}
}

// AccountStatus is orthogonal to the phase. BREACHED and UPGRADED are both
// terminal on this dimension; nothing transitions an account back to ACTIVE.
type AccountStatus string

const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusBreached AccountStatus = "BREACHED"
	StatusUpgraded AccountStatus = "UPGRADED"
)

// Account represents a funded-trading account within the core domain.
// This is the primary representation used by services.
type Account struct {
	AccountID          string          `json:"accountID"`          // Primary Key (UUID)
	Name               string          `json:"name"`               // User-defined name
	Phase              AccountPhase    `json:"phase"`              // EVAL1, EVAL2, FUNDED
	Status             AccountStatus   `json:"status"`             // ACTIVE, BREACHED, UPGRADED
	Principal          decimal.Decimal `json:"principal"`          // Starting capital, immutable after creation
	CurrentBalance     decimal.Decimal `json:"currentBalance"`     // Derived from the trade ledger
	MaxDrawdownPct     decimal.Decimal `json:"maxDrawdownPct"`     // Percent of principal
	DailyDrawdownPct   decimal.Decimal `json:"dailyDrawdownPct"`   // Percent of day-start balance
	ProfitTargetPct    decimal.Decimal `json:"profitTargetPct"`    // Zero in FUNDED
	ProfitTargetAmount decimal.Decimal `json:"profitTargetAmount"` // Zero in FUNDED
	ProfitSharePct     decimal.Decimal `json:"profitSharePct"`     // Zero outside FUNDED
	UpgradedFrom       string          `json:"upgradedFrom"`       // Weak reference, empty when not spawned by an upgrade
	UpgradedTo         string          `json:"upgradedTo"`         // Weak reference, set when retired by an upgrade
	AuditFields
}

var oneHundred = decimal.NewFromInt(100)

// Profit returns CurrentBalance - Principal.
func (a Account) Profit() decimal.Decimal {
	return a.CurrentBalance.Sub(a.Principal)
}

// MaxDrawdownAmount returns Principal * MaxDrawdownPct / 100.
func (a Account) MaxDrawdownAmount() decimal.Decimal {
	return a.Principal.Mul(a.MaxDrawdownPct).Div(oneHundred)
}

// IsMaxBreached reports whether the account has violated its max-drawdown
// limit: (currentBalance - principal) < -(principal * maxDrawdownPct / 100).
// The boundary itself is not a breach (strict less-than).
func (a Account) IsMaxBreached() bool {
	return a.Profit().LessThan(a.MaxDrawdownAmount().Neg())
}
