package services

import (
	"context"

	"github.com/propledger/funded_account_app/internal/core/domain"
)

// ProgressionSvcFacade drives the Eval1 -> Eval2 -> Funded state machine.
type ProgressionSvcFacade interface {
	// CanUpgrade reports upgrade eligibility: active, not yet funded, and
	// profit at or above the target amount.
	CanUpgrade(account *domain.Account) bool

	// Upgrade spawns the next-phase account (balance reset to principal,
	// parameters from the firm template) and retires the source as
	// UPGRADED. The two writes commit independently under a saga record; a
	// failure between them surfaces apperrors.ErrPartialSequence.
	Upgrade(ctx context.Context, accountID string, userID string) (newAccount *domain.Account, oldAccount *domain.Account, err error)

	// ListUnfinishedOperations retrieves an account's saga records that have
	// not completed, oldest first. A FAILED entry marks a partially
	// committed sequence awaiting manual repair.
	ListUnfinishedOperations(ctx context.Context, accountID string) ([]domain.OperationSaga, error)
}
