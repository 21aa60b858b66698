package services

import (
	"context"

	"github.com/propledger/funded_account_app/internal/core/domain"
	"github.com/propledger/funded_account_app/internal/dto"
)

// TradeSvcFacade defines the trade ledger operations. Every mutation triggers
// a full recalculation of the owning account's balance.
type TradeSvcFacade interface {
	// AddTrade appends a trade to an account's ledger.
	AddTrade(ctx context.Context, accountID string, req dto.CreateTradeRequest, userID string) (*domain.Trade, error)

	// EditTrade updates an existing trade.
	EditTrade(ctx context.Context, tradeID string, req dto.UpdateTradeRequest, userID string) (*domain.Trade, error)

	// DeleteTrade removes a trade from the ledger.
	DeleteTrade(ctx context.Context, tradeID string, userID string) error

	// ListTrades retrieves an account's trades sorted by execution time
	// ascending.
	ListTrades(ctx context.Context, accountID string) ([]domain.Trade, error)
}

// Recalculator derives the authoritative balance for an account by replaying
// its ledger, then applies the max-breach check. The replay is a full O(n)
// scan on every call; callers rely on that contract, not on incremental
// updates. An incremental implementation can be swapped in behind this
// interface without touching callers.
type Recalculator interface {
	// Recalculate replays the ledger and returns the updated account.
	Recalculate(ctx context.Context, accountID string, userID string) (*domain.Account, error)
}
