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

const tradeColumns = `trade_id, account_id, instrument, trade_type, old_balance, new_balance, executed_at, notes, created_at, created_by, last_updated_at, last_updated_by`

type PgxTradeRepository struct {
	BaseRepository
}

// newPgxTradeRepository creates a new repository for the trade ledger.
func newPgxTradeRepository(pool *pgxpool.Pool) portsrepo.TradeRepositoryFacade {
	return &PgxTradeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TradeRepositoryFacade = (*PgxTradeRepository)(nil)

func scanTradeRow(row pgx.Row) (models.Trade, error) {
	var modelTrade models.Trade
	err := row.Scan(
		&modelTrade.TradeID,
		&modelTrade.AccountID,
		&modelTrade.Instrument,
		&modelTrade.TradeType,
		&modelTrade.OldBalance,
		&modelTrade.NewBalance,
		&modelTrade.ExecutedAt,
		&modelTrade.Notes,
		&modelTrade.CreatedAt,
		&modelTrade.CreatedBy,
		&modelTrade.LastUpdatedAt,
		&modelTrade.LastUpdatedBy,
	)
	return modelTrade, err
}

// SaveTrade appends a new trade to the ledger.
func (r *PgxTradeRepository) SaveTrade(ctx context.Context, trade domain.Trade) error {
	modelTrade := mapping.ToModelTrade(trade)

	query := `
		INSERT INTO trades (` + tradeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelTrade.TradeID,
		modelTrade.AccountID,
		modelTrade.Instrument,
		modelTrade.TradeType,
		modelTrade.OldBalance,
		modelTrade.NewBalance,
		modelTrade.ExecutedAt,
		modelTrade.Notes,
		modelTrade.CreatedAt,
		modelTrade.CreatedBy,
		modelTrade.LastUpdatedAt,
		modelTrade.LastUpdatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: trade with ID %s already exists", apperrors.ErrDuplicate, modelTrade.TradeID)
		}
		return wrapDBError(err, "failed to save trade %s", modelTrade.TradeID)
	}
	return nil
}

// FindTradeByID retrieves a trade by its ID.
func (r *PgxTradeRepository) FindTradeByID(ctx context.Context, tradeID string) (*domain.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE trade_id = $1;
	`
	modelTrade, err := scanTradeRow(r.Pool.QueryRow(ctx, query, tradeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapDBError(err, "failed to find trade by ID %s", tradeID)
	}

	domainTrade := mapping.ToDomainTrade(modelTrade)
	return &domainTrade, nil
}

// ListTradesByAccount retrieves every trade belonging to an account. Rows come
// back in insertion order at best; replay callers sort by execution time.
func (r *PgxTradeRepository) ListTradesByAccount(ctx context.Context, accountID string) ([]domain.Trade, error) {
	query := `
		SELECT ` + tradeColumns + `
		FROM trades
		WHERE account_id = $1;
	`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, wrapDBError(err, "failed to query trades for account %s", accountID)
	}
	defer rows.Close()

	trades := []domain.Trade{}
	for rows.Next() {
		modelTrade, err := scanTradeRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade row for account %s: %w", accountID, err)
		}
		trades = append(trades, mapping.ToDomainTrade(modelTrade))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating trade rows for account %s: %w", accountID, rows.Err())
	}

	return trades, nil
}

// UpdateTrade rewrites an existing ledger entry. The account link is fixed.
func (r *PgxTradeRepository) UpdateTrade(ctx context.Context, trade domain.Trade) error {
	modelTrade := mapping.ToModelTrade(trade)

	query := `
		UPDATE trades
		SET instrument = $2, trade_type = $3, old_balance = $4, new_balance = $5, executed_at = $6, notes = $7, last_updated_at = $8, last_updated_by = $9
		WHERE trade_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		modelTrade.TradeID,
		modelTrade.Instrument,
		modelTrade.TradeType,
		modelTrade.OldBalance,
		modelTrade.NewBalance,
		modelTrade.ExecutedAt,
		modelTrade.Notes,
		modelTrade.LastUpdatedAt,
		modelTrade.LastUpdatedBy,
	)

	if err != nil {
		return wrapDBError(err, "failed to execute update trade %s", modelTrade.TradeID)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeleteTrade removes a trade from the ledger.
func (r *PgxTradeRepository) DeleteTrade(ctx context.Context, tradeID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM trades WHERE trade_id = $1;`, tradeID)
	if err != nil {
		return wrapDBError(err, "failed to delete trade %s", tradeID)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
