package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propledger/funded_account_app/internal/apperrors"
	"github.com/propledger/funded_account_app/internal/core/domain"
	portsrepo "github.com/propledger/funded_account_app/internal/core/ports/repositories"
	"github.com/propledger/funded_account_app/internal/models"
	"github.com/propledger/funded_account_app/internal/utils/mapping"
)

const snapshotColumns = `snapshot_id, account_id, trading_day, starting_balance, daily_dd_level, is_payout_reset, is_manual, created_at, created_by, last_updated_at, last_updated_by`

type PgxSnapshotRepository struct {
	BaseRepository
}

// newPgxSnapshotRepository creates a new repository for daily snapshots.
func newPgxSnapshotRepository(pool *pgxpool.Pool) portsrepo.SnapshotRepositoryFacade {
	return &PgxSnapshotRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SnapshotRepositoryFacade = (*PgxSnapshotRepository)(nil)

func scanSnapshotRow(row pgx.Row) (models.DailySnapshot, error) {
	var modelSnap models.DailySnapshot
	err := row.Scan(
		&modelSnap.SnapshotID,
		&modelSnap.AccountID,
		&modelSnap.TradingDay,
		&modelSnap.StartingBalance,
		&modelSnap.DailyDDLevel,
		&modelSnap.IsPayoutReset,
		&modelSnap.IsManual,
		&modelSnap.CreatedAt,
		&modelSnap.CreatedBy,
		&modelSnap.LastUpdatedAt,
		&modelSnap.LastUpdatedBy,
	)
	return modelSnap, err
}

// SaveSnapshot inserts a new snapshot. The unique constraint on
// (account_id, trading_day) makes a second insert for the same day fail with
// apperrors.ErrDuplicate; callers rely on this for idempotency.
func (r *PgxSnapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.DailySnapshot) error {
	modelSnap := mapping.ToModelSnapshot(snapshot)

	query := `
		INSERT INTO daily_snapshots (` + snapshotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelSnap.SnapshotID,
		modelSnap.AccountID,
		modelSnap.TradingDay,
		modelSnap.StartingBalance,
		modelSnap.DailyDDLevel,
		modelSnap.IsPayoutReset,
		modelSnap.IsManual,
		modelSnap.CreatedAt,
		modelSnap.CreatedBy,
		modelSnap.LastUpdatedAt,
		modelSnap.LastUpdatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: snapshot for account %s on %s already exists", apperrors.ErrDuplicate, modelSnap.AccountID, modelSnap.TradingDay)
		}
		return wrapDBError(err, "failed to save snapshot for account %s on %s", modelSnap.AccountID, modelSnap.TradingDay)
	}
	return nil
}

// FindSnapshot retrieves the snapshot for (accountID, tradingDay).
func (r *PgxSnapshotRepository) FindSnapshot(ctx context.Context, accountID string, tradingDay string) (*domain.DailySnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM daily_snapshots
		WHERE account_id = $1 AND trading_day = $2;
	`
	modelSnap, err := scanSnapshotRow(r.Pool.QueryRow(ctx, query, accountID, tradingDay))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapDBError(err, "failed to find snapshot for account %s on %s", accountID, tradingDay)
	}

	domainSnap := mapping.ToDomainSnapshot(modelSnap)
	return &domainSnap, nil
}

// ListSnapshotsByAccount retrieves an account's snapshots, most recent trading
// day first.
func (r *PgxSnapshotRepository) ListSnapshotsByAccount(ctx context.Context, accountID string, limit int) ([]domain.DailySnapshot, error) {
	if limit <= 0 {
		limit = 30
	}

	query := `
		SELECT ` + snapshotColumns + `
		FROM daily_snapshots
		WHERE account_id = $1
		ORDER BY trading_day DESC
		LIMIT $2;
	`

	rows, err := r.Pool.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, wrapDBError(err, "failed to query snapshots for account %s", accountID)
	}
	defer rows.Close()

	snapshots := []domain.DailySnapshot{}
	for rows.Next() {
		modelSnap, err := scanSnapshotRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row for account %s: %w", accountID, err)
		}
		snapshots = append(snapshots, mapping.ToDomainSnapshot(modelSnap))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating snapshot rows for account %s: %w", accountID, rows.Err())
	}

	return snapshots, nil
}

// DeleteSnapshotsForDay removes all snapshots for (accountID, tradingDay) and
// returns the number deleted. Zero is not an error; the payout reset flow
// proceeds whether or not a snapshot existed.
func (r *PgxSnapshotRepository) DeleteSnapshotsForDay(ctx context.Context, accountID string, tradingDay string) (int64, error) {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM daily_snapshots WHERE account_id = $1 AND trading_day = $2;`, accountID, tradingDay)
	if err != nil {
		return 0, wrapDBError(err, "failed to delete snapshots for account %s on %s", accountID, tradingDay)
	}
	return cmdTag.RowsAffected(), nil
}
