package repositories

import (
	"context"

	"github.com/propledger/funded_account_app/internal/core/domain"
)

// TradeReader defines read operations for the trade ledger
type TradeReader interface {
	// FindTradeByID retrieves a specific trade by its unique identifier.
	FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error)

	// ListTradesByAccount retrieves every trade belonging to an account.
	// No ordering is guaranteed; callers sort by ExecutedAt before replay.
	ListTradesByAccount(ctx context.Context, accountID string) ([]domain.Trade, error)
}

// TradeWriter defines write operations for the trade ledger
type TradeWriter interface {
	// SaveTrade persists a new trade.
	SaveTrade(ctx context.Context, trade domain.Trade) error

	// UpdateTrade updates an existing trade.
	UpdateTrade(ctx context.Context, trade domain.Trade) error

	// DeleteTrade removes a trade from the ledger.
	DeleteTrade(ctx context.Context, tradeID string) error
}

// TradeRepositoryFacade combines all trade-related repository interfaces.
type TradeRepositoryFacade interface {
	TradeReader
	TradeWriter
}
