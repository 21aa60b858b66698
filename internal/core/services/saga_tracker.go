package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/propledger/funded_account_app/internal/core/domain"
	portsrepo "github.com/propledger/funded_account_app/internal/core/ports/repositories"
)

// sagaTracker persists the progress of a multi-step operation. Step writes
// are bookkeeping around work that has already committed, so tracker failures
// are logged, never propagated — except for begin, which must succeed before
// the first step runs.
type sagaTracker struct {
	BaseService
	repo portsrepo.SagaRepository
	now  func() time.Time
}

func newSagaTracker(repo portsrepo.SagaRepository, now func() time.Time) sagaTracker {
	return sagaTracker{repo: repo, now: now}
}

func (t sagaTracker) begin(ctx context.Context, kind domain.SagaKind, accountID string, totalSteps int) (domain.OperationSaga, error) {
	now := t.now()
	saga := domain.OperationSaga{
		SagaID:        uuid.NewString(),
		Kind:          kind,
		AccountID:     accountID,
		Step:          0,
		TotalSteps:    totalSteps,
		State:         domain.SagaPending,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	if err := t.repo.SaveSaga(ctx, saga); err != nil {
		return domain.OperationSaga{}, err
	}
	return saga, nil
}

func (t sagaTracker) advance(ctx context.Context, saga *domain.OperationSaga, step int) {
	saga.Step = step
	saga.LastUpdatedAt = t.now()
	if err := t.repo.UpdateSaga(ctx, *saga); err != nil {
		t.LogWarn(ctx, "Failed to advance saga record",
			slog.String("saga_id", saga.SagaID),
			slog.Int("step", step),
			slog.String("error", err.Error()))
	}
}

func (t sagaTracker) complete(ctx context.Context, saga *domain.OperationSaga) {
	saga.Step = saga.TotalSteps
	saga.State = domain.SagaCompleted
	saga.LastUpdatedAt = t.now()
	if err := t.repo.UpdateSaga(ctx, *saga); err != nil {
		t.LogWarn(ctx, "Failed to complete saga record",
			slog.String("saga_id", saga.SagaID),
			slog.String("error", err.Error()))
	}
}

func (t sagaTracker) unfinishedFor(ctx context.Context, accountID string) ([]domain.OperationSaga, error) {
	return t.repo.ListUnfinishedByAccount(ctx, accountID)
}

func (t sagaTracker) fail(ctx context.Context, saga domain.OperationSaga, detail string) {
	saga.State = domain.SagaFailed
	saga.Detail = detail
	saga.LastUpdatedAt = t.now()
	if err := t.repo.UpdateSaga(ctx, saga); err != nil {
		t.LogError(ctx, err, "Failed to mark saga as failed",
			slog.String("saga_id", saga.SagaID))
	}
}
