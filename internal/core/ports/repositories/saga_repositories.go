package repositories

import (
	"context"

	"github.com/propledger/funded_account_app/internal/core/domain"
)

// SagaRepository defines operations for the short-lived records that track
// multi-step operations.
type SagaRepository interface {
	// SaveSaga persists a new saga record in state PENDING at step 0.
	SaveSaga(ctx context.Context, saga domain.OperationSaga) error

	// UpdateSaga advances a saga's step/state/detail.
	UpdateSaga(ctx context.Context, saga domain.OperationSaga) error

	// ListUnfinishedByAccount retrieves sagas not in state COMPLETED for an
	// account, oldest first. Used to surface sequences needing repair.
	ListUnfinishedByAccount(ctx context.Context, accountID string) ([]domain.OperationSaga, error)
}
