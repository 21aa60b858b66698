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

const payoutColumns = `payout_id, account_id, payout_amount, old_balance, new_balance, profit_share_applied, requested_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxPayoutRepository struct {
	BaseRepository
}

// newPgxPayoutRepository creates a new repository for payout history records.
func newPgxPayoutRepository(pool *pgxpool.Pool) portsrepo.PayoutRepository {
	return &PgxPayoutRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PayoutRepository = (*PgxPayoutRepository)(nil)

// SavePayout appends a new payout record. Payouts are never updated or
// deleted outside the account bulk delete.
func (r *PgxPayoutRepository) SavePayout(ctx context.Context, payout domain.Payout) error {
	modelPayout := mapping.ToModelPayout(payout)

	query := `
		INSERT INTO payouts (` + payoutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelPayout.PayoutID,
		modelPayout.AccountID,
		modelPayout.PayoutAmount,
		modelPayout.OldBalance,
		modelPayout.NewBalance,
		modelPayout.ProfitShareApplied,
		modelPayout.RequestedAt,
		modelPayout.CreatedAt,
		modelPayout.CreatedBy,
		modelPayout.LastUpdatedAt,
		modelPayout.LastUpdatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: payout with ID %s already exists", apperrors.ErrDuplicate, modelPayout.PayoutID)
		}
		return wrapDBError(err, "failed to save payout %s", modelPayout.PayoutID)
	}
	return nil
}

// ListPayoutsByAccount retrieves an account's payouts, most recent first.
func (r *PgxPayoutRepository) ListPayoutsByAccount(ctx context.Context, accountID string) ([]domain.Payout, error) {
	query := `
		SELECT ` + payoutColumns + `
		FROM payouts
		WHERE account_id = $1
		ORDER BY requested_at DESC, payout_id DESC;
	`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, wrapDBError(err, "failed to query payouts for account %s", accountID)
	}
	defer rows.Close()

	payouts := []domain.Payout{}
	for rows.Next() {
		var modelPayout models.Payout
		err := rows.Scan(
			&modelPayout.PayoutID,
			&modelPayout.AccountID,
			&modelPayout.PayoutAmount,
			&modelPayout.OldBalance,
			&modelPayout.NewBalance,
			&modelPayout.ProfitShareApplied,
			&modelPayout.RequestedAt,
			&modelPayout.CreatedAt,
			&modelPayout.CreatedBy,
			&modelPayout.LastUpdatedAt,
			&modelPayout.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payout row for account %s: %w", accountID, err)
		}
		payouts = append(payouts, mapping.ToDomainPayout(modelPayout))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating payout rows for account %s: %w", accountID, rows.Err())
	}

	return payouts, nil
}
