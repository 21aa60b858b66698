package services

import (
	"context"

	"github.com/propledger/funded_account_app/internal/core/domain"
	"github.com/propledger/funded_account_app/internal/dto"
)

// AccountReaderSvc defines read-only account operations
type AccountReaderSvc interface {
	// GetAccountByID retrieves a single account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountSvcFacade defines the full account service surface
type AccountSvcFacade interface {
	AccountReaderSvc

	// CreateAccount creates a new account in phase EVAL1 (or the requested
	// phase), balance equal to principal, parameters from the firm template
	// unless overridden.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// DeleteAccount is the explicit bulk delete: the account and all of its
	// trades, snapshots and payouts are removed in one transaction.
	DeleteAccount(ctx context.Context, accountID string, userID string) error
}
