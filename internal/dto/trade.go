package dto

import (
	"time"

	"github.com/propledger/funded_account_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTradeRequest defines the data needed to record a trade.
// OldBalance is optional; when omitted the account's current balance is used.
type CreateTradeRequest struct {
	Instrument string           `json:"instrument"`
	TradeType  domain.TradeType `json:"tradeType" binding:"omitempty,oneof=BUY SELL"`
	OldBalance *decimal.Decimal `json:"oldBalance"`
	NewBalance decimal.Decimal  `json:"newBalance" binding:"required"`
	ExecutedAt *time.Time       `json:"executedAt"` // Defaults to now
	Notes      string           `json:"notes"`
}

// UpdateTradeRequest defines the fields that may be edited on a trade.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateTradeRequest struct {
	Instrument *string          `json:"instrument"`
	TradeType  *string          `json:"tradeType" binding:"omitempty,oneof=BUY SELL"`
	OldBalance *decimal.Decimal `json:"oldBalance"`
	NewBalance *decimal.Decimal `json:"newBalance"`
	ExecutedAt *time.Time       `json:"executedAt"`
	Notes      *string          `json:"notes"`
}

// TradeResponse defines the data returned for a trade.
type TradeResponse struct {
	TradeID    string           `json:"tradeID"`
	AccountID  string           `json:"accountID"`
	Instrument string           `json:"instrument,omitempty"`
	TradeType  domain.TradeType `json:"tradeType,omitempty"`
	OldBalance decimal.Decimal  `json:"oldBalance"`
	NewBalance decimal.Decimal  `json:"newBalance"`
	PnL        decimal.Decimal  `json:"pnl"`
	ExecutedAt time.Time        `json:"executedAt"`
	Notes      string           `json:"notes,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// ToTradeResponse converts a domain.Trade to TradeResponse DTO
func ToTradeResponse(t *domain.Trade) TradeResponse {
	return TradeResponse{
		TradeID:    t.TradeID,
		AccountID:  t.AccountID,
		Instrument: t.Instrument,
		TradeType:  t.TradeType,
		OldBalance: t.OldBalance,
		NewBalance: t.NewBalance,
		PnL:        t.PnL(),
		ExecutedAt: t.ExecutedAt,
		Notes:      t.Notes,
		CreatedAt:  t.CreatedAt,
	}
}

// ToListTradeResponse converts a slice of domain.Trade to response DTOs
func ToListTradeResponse(trades []domain.Trade) []TradeResponse {
	res := make([]TradeResponse, len(trades))
	for i, t := range trades {
		res[i] = ToTradeResponse(&t)
	}
	return res
}

// ListTradesResponse wraps the list of trades for an account.
type ListTradesResponse struct {
	Trades []TradeResponse `json:"trades"`
}
