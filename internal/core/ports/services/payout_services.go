package services

import (
	"context"

	"github.com/propledger/funded_account_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PayoutSvcFacade computes and executes profit-sharing withdrawals.
type PayoutSvcFacade interface {
	// AvailablePayout returns the distributable-profit breakdown for the
	// account at its current balance.
	AvailablePayout(ctx context.Context, accountID string) (*domain.PayoutBreakdown, error)

	// RequestPayout validates the amount against the available share,
	// writes the payout record, resets the balance to principal and forces
	// a daily snapshot reset. Three independently committed steps under a
	// saga record; a failure mid-sequence surfaces
	// apperrors.ErrPartialSequence.
	RequestPayout(ctx context.Context, accountID string, amount decimal.Decimal, userID string) (*domain.Payout, error)

	// ListPayouts retrieves an account's payout history, most recent first.
	ListPayouts(ctx context.Context, accountID string) ([]domain.Payout, error)
}
