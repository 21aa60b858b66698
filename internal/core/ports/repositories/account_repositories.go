package repositories

import (
	"context"
	"time"

	"github.com/propledger/funded_account_app/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's mutable fields (balance,
	// status, upgrade links). The principal is never rewritten.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccountData removes an account together with its trades,
	// snapshots and payouts in a single database transaction. This is the
	// explicit bulk delete; accounts are otherwise retired, not removed.
	DeleteAccountData(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
