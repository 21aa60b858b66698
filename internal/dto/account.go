package dto

import (
	"time"

	"github.com/propledger/funded_account_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
// Percentage parameters are optional; the firm template supplies defaults.
type CreateAccountRequest struct {
	Name             string              `json:"name" binding:"required"`
	Principal        decimal.Decimal     `json:"principal" binding:"required"`
	Phase            domain.AccountPhase `json:"phase" binding:"omitempty,oneof=EVAL1 EVAL2 FUNDED"`
	MaxDrawdownPct   *decimal.Decimal    `json:"maxDrawdownPct"`   // Optional override
	DailyDrawdownPct *decimal.Decimal    `json:"dailyDrawdownPct"` // Optional override
	ProfitTargetPct  *decimal.Decimal    `json:"profitTargetPct"`  // Optional override, ignored for FUNDED
	ProfitSharePct   *decimal.Decimal    `json:"profitSharePct"`   // Optional override, FUNDED only
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID          string               `json:"accountID"`
	Name               string               `json:"name"`
	Phase              domain.AccountPhase  `json:"phase"`
	Status             domain.AccountStatus `json:"status"`
	Principal          decimal.Decimal      `json:"principal"`
	CurrentBalance     decimal.Decimal      `json:"currentBalance"`
	MaxDrawdownPct     decimal.Decimal      `json:"maxDrawdownPct"`
	DailyDrawdownPct   decimal.Decimal      `json:"dailyDrawdownPct"`
	ProfitTargetPct    decimal.Decimal      `json:"profitTargetPct"`
	ProfitTargetAmount decimal.Decimal      `json:"profitTargetAmount"`
	ProfitSharePct     decimal.Decimal      `json:"profitSharePct"`
	UpgradedFrom       string               `json:"upgradedFrom,omitempty"`
	UpgradedTo         string               `json:"upgradedTo,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	LastUpdatedAt      time.Time            `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:          acc.AccountID,
		Name:               acc.Name,
		Phase:              acc.Phase,
		Status:             acc.Status,
		Principal:          acc.Principal,
		CurrentBalance:     acc.CurrentBalance,
		MaxDrawdownPct:     acc.MaxDrawdownPct,
		DailyDrawdownPct:   acc.DailyDrawdownPct,
		ProfitTargetPct:    acc.ProfitTargetPct,
		ProfitTargetAmount: acc.ProfitTargetAmount,
		ProfitSharePct:     acc.ProfitSharePct,
		UpgradedFrom:       acc.UpgradedFrom,
		UpgradedTo:         acc.UpgradedTo,
		CreatedAt:          acc.CreatedAt,
		LastUpdatedAt:      acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// UpgradeAccountResponse returns both sides of a completed upgrade.
type UpgradeAccountResponse struct {
	NewAccount AccountResponse `json:"newAccount"`
	OldAccount AccountResponse `json:"oldAccount"`
}
