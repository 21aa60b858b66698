package dto

import (
	"time"

	"github.com/propledger/funded_account_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RequestPayoutRequest defines the data needed to request a payout.
type RequestPayoutRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// PayoutResponse defines the data returned for a payout record.
type PayoutResponse struct {
	PayoutID           string          `json:"payoutID"`
	AccountID          string          `json:"accountID"`
	PayoutAmount       decimal.Decimal `json:"payoutAmount"`
	OldBalance         decimal.Decimal `json:"oldBalance"`
	NewBalance         decimal.Decimal `json:"newBalance"`
	ProfitShareApplied decimal.Decimal `json:"profitShareApplied"`
	RequestedAt        time.Time       `json:"requestedAt"`
}

// ToPayoutResponse converts a domain.Payout to PayoutResponse DTO
func ToPayoutResponse(p *domain.Payout) PayoutResponse {
	return PayoutResponse{
		PayoutID:           p.PayoutID,
		AccountID:          p.AccountID,
		PayoutAmount:       p.PayoutAmount,
		OldBalance:         p.OldBalance,
		NewBalance:         p.NewBalance,
		ProfitShareApplied: p.ProfitShareApplied,
		RequestedAt:        p.RequestedAt,
	}
}

// ToListPayoutResponse converts a slice of domain.Payout to response DTOs
func ToListPayoutResponse(payouts []domain.Payout) []PayoutResponse {
	res := make([]PayoutResponse, len(payouts))
	for i, p := range payouts {
		res[i] = ToPayoutResponse(&p)
	}
	return res
}

// AvailablePayoutResponse mirrors domain.PayoutBreakdown.
type AvailablePayoutResponse struct {
	Available    decimal.Decimal `json:"available"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
	YourShare    decimal.Decimal `json:"yourShare"`
	CompanyShare decimal.Decimal `json:"companyShare"`
}

// ToAvailablePayoutResponse converts a breakdown to its response DTO
func ToAvailablePayoutResponse(b domain.PayoutBreakdown) AvailablePayoutResponse {
	return AvailablePayoutResponse{
		Available:    b.Available,
		TotalProfit:  b.TotalProfit,
		YourShare:    b.YourShare,
		CompanyShare: b.CompanyShare,
	}
}
