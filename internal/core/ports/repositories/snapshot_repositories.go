package repositories

import (
	"context"

	"github.com/propledger/funded_account_app/internal/core/domain"
)

// SnapshotReader defines read operations for daily snapshots
type SnapshotReader interface {
	// FindSnapshot retrieves the snapshot for (accountID, tradingDay).
	FindSnapshot(ctx context.Context, accountID string, tradingDay string) (*domain.DailySnapshot, error)

	// ListSnapshotsByAccount retrieves an account's snapshots, most recent
	// trading day first.
	ListSnapshotsByAccount(ctx context.Context, accountID string, limit int) ([]domain.DailySnapshot, error)
}

// SnapshotWriter defines write operations for daily snapshots
type SnapshotWriter interface {
	// SaveSnapshot persists a new snapshot. A second insert for the same
	// (accountID, tradingDay) fails with apperrors.ErrDuplicate.
	SaveSnapshot(ctx context.Context, snapshot domain.DailySnapshot) error

	// DeleteSnapshotsForDay removes all snapshots for (accountID,
	// tradingDay) and returns the number deleted. Only the payout reset
	// flow uses this.
	DeleteSnapshotsForDay(ctx context.Context, accountID string, tradingDay string) (int64, error)
}

// SnapshotRepositoryFacade combines all snapshot-related repository interfaces.
type SnapshotRepositoryFacade interface {
	SnapshotReader
	SnapshotWriter
}
