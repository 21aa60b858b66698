package repositories

import (
	"context"

	"github.com/propledger/funded_account_app/internal/core/domain"
)

// PayoutRepository defines operations for payout history records. Payouts are
// append-only; there is no update or delete.
type PayoutRepository interface {
	// SavePayout persists a new payout record.
	SavePayout(ctx context.Context, payout domain.Payout) error

	// ListPayoutsByAccount retrieves an account's payouts, most recent first.
	ListPayoutsByAccount(ctx context.Context, accountID string) ([]domain.Payout, error)
}
