package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propledger/funded_account_app/internal/apperrors"
	"github.com/propledger/funded_account_app/internal/core/domain"
	portsrepo "github.com/propledger/funded_account_app/internal/core/ports/repositories"
	"github.com/propledger/funded_account_app/internal/models"
	"github.com/propledger/funded_account_app/internal/utils/mapping"
)

const sagaColumns = `saga_id, kind, account_id, step, total_steps, state, detail, created_at, last_updated_at`

type PgxSagaRepository struct {
	BaseRepository
}

// newPgxSagaRepository creates a new repository for multi-step operation
// records.
func newPgxSagaRepository(pool *pgxpool.Pool) portsrepo.SagaRepository {
	return &PgxSagaRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SagaRepository = (*PgxSagaRepository)(nil)

// SaveSaga inserts a new saga record.
func (r *PgxSagaRepository) SaveSaga(ctx context.Context, saga domain.OperationSaga) error {
	modelSaga := mapping.ToModelSaga(saga)

	query := `
		INSERT INTO operation_sagas (` + sagaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelSaga.SagaID,
		modelSaga.Kind,
		modelSaga.AccountID,
		modelSaga.Step,
		modelSaga.TotalSteps,
		modelSaga.State,
		modelSaga.Detail,
		modelSaga.CreatedAt,
		modelSaga.LastUpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: saga with ID %s already exists", apperrors.ErrDuplicate, modelSaga.SagaID)
		}
		return wrapDBError(err, "failed to save saga %s", modelSaga.SagaID)
	}
	return nil
}

// UpdateSaga advances a saga's step, state and detail.
func (r *PgxSagaRepository) UpdateSaga(ctx context.Context, saga domain.OperationSaga) error {
	modelSaga := mapping.ToModelSaga(saga)

	query := `
		UPDATE operation_sagas
		SET step = $2, state = $3, detail = $4, last_updated_at = $5
		WHERE saga_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		modelSaga.SagaID,
		modelSaga.Step,
		modelSaga.State,
		modelSaga.Detail,
		modelSaga.LastUpdatedAt,
	)

	if err != nil {
		return wrapDBError(err, "failed to execute update saga %s", modelSaga.SagaID)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// ListUnfinishedByAccount retrieves sagas not in state COMPLETED for an
// account, oldest first.
func (r *PgxSagaRepository) ListUnfinishedByAccount(ctx context.Context, accountID string) ([]domain.OperationSaga, error) {
	query := `
		SELECT ` + sagaColumns + `
		FROM operation_sagas
		WHERE account_id = $1 AND state <> 'COMPLETED'
		ORDER BY created_at;
	`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, wrapDBError(err, "failed to query sagas for account %s", accountID)
	}
	defer rows.Close()

	sagas := []domain.OperationSaga{}
	for rows.Next() {
		var modelSaga models.OperationSaga
		err := rows.Scan(
			&modelSaga.SagaID,
			&modelSaga.Kind,
			&modelSaga.AccountID,
			&modelSaga.Step,
			&modelSaga.TotalSteps,
			&modelSaga.State,
			&modelSaga.Detail,
			&modelSaga.CreatedAt,
			&modelSaga.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan saga row for account %s: %w", accountID, err)
		}
		sagas = append(sagas, mapping.ToDomainSaga(modelSaga))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating saga rows for account %s: %w", accountID, rows.Err())
	}

	return sagas, nil
}
