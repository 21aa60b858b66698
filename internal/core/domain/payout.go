package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payout is an immutable history record of a profit-sharing withdrawal.
// It is never updated or deleted by normal flow.
type Payout struct {
	PayoutID           string          `json:"payoutID"` // Primary Key (ULID)
	AccountID          string          `json:"accountID"`
	PayoutAmount       decimal.Decimal `json:"payoutAmount"`
	OldBalance         decimal.Decimal `json:"oldBalance"`
	NewBalance         decimal.Decimal `json:"newBalance"` // Always the account principal
	ProfitShareApplied decimal.Decimal `json:"profitShareApplied"`
	RequestedAt        time.Time       `json:"requestedAt"`
	AuditFields
}

// PayoutBreakdown is the distributable-profit computation for a funded
// account at a point in time.
type PayoutBreakdown struct {
	Available    decimal.Decimal `json:"available"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
	YourShare    decimal.Decimal `json:"yourShare"`
	CompanyShare decimal.Decimal `json:"companyShare"`
}

// BreakdownFor computes the payout split for the given balance state. When
// there is no profit, nothing is distributable.
func BreakdownFor(currentBalance, principal, profitSharePct decimal.Decimal) PayoutBreakdown {
	totalProfit := currentBalance.Sub(principal)
	if totalProfit.LessThanOrEqual(decimal.Zero) {
		return PayoutBreakdown{
			Available:    decimal.Zero,
			TotalProfit:  totalProfit,
			YourShare:    decimal.Zero,
			CompanyShare: decimal.Zero,
		}
	}
	yourShare := totalProfit.Mul(profitSharePct).Div(oneHundred)
	return PayoutBreakdown{
		Available:    yourShare,
		TotalProfit:  totalProfit,
		YourShare:    yourShare,
		CompanyShare: totalProfit.Sub(yourShare),
	}
}
