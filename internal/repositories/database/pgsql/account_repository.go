package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propledger/funded_account_app/internal/apperrors"
	"github.com/propledger/funded_account_app/internal/core/domain"
	portsrepo "github.com/propledger/funded_account_app/internal/core/ports/repositories"
	"github.com/propledger/funded_account_app/internal/models"
	"github.com/propledger/funded_account_app/internal/utils/mapping"
)

const accountColumns = `account_id, name, phase, status, principal, current_balance, max_drawdown_pct, daily_drawdown_pct, profit_target_pct, profit_target_amount, profit_share_pct, upgraded_from, upgraded_to, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// nullable converts an empty string to a NULL for the upgrade link columns.
func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func scanAccountRow(row pgx.Row) (models.Account, error) {
	var modelAcc models.Account
	var upgradedFrom, upgradedTo sql.NullString
	err := row.Scan(
		&modelAcc.AccountID,
		&modelAcc.Name,
		&modelAcc.Phase,
		&modelAcc.Status,
		&modelAcc.Principal,
		&modelAcc.CurrentBalance,
		&modelAcc.MaxDrawdownPct,
		&modelAcc.DailyDrawdownPct,
		&modelAcc.ProfitTargetPct,
		&modelAcc.ProfitTargetAmount,
		&modelAcc.ProfitSharePct,
		&upgradedFrom,
		&upgradedTo,
		&modelAcc.CreatedAt,
		&modelAcc.CreatedBy,
		&modelAcc.LastUpdatedAt,
		&modelAcc.LastUpdatedBy,
	)
	if err != nil {
		return models.Account{}, err
	}
	modelAcc.UpgradedFrom = upgradedFrom.String
	modelAcc.UpgradedTo = upgradedTo.String
	return modelAcc, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`

	_, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Name,
		modelAcc.Phase,
		modelAcc.Status,
		modelAcc.Principal,
		modelAcc.CurrentBalance,
		modelAcc.MaxDrawdownPct,
		modelAcc.DailyDrawdownPct,
		modelAcc.ProfitTargetPct,
		modelAcc.ProfitTargetAmount,
		modelAcc.ProfitSharePct,
		nullable(modelAcc.UpgradedFrom),
		nullable(modelAcc.UpgradedTo),
		modelAcc.CreatedAt,
		modelAcc.CreatedBy,
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, modelAcc.AccountID)
		}
		return wrapDBError(err, "failed to save account %s", modelAcc.AccountID)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = $1;
	`
	modelAcc, err := scanAccountRow(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, wrapDBError(err, "failed to find account by ID %s", accountID)
	}

	domainAcc := mapping.ToDomainAccount(modelAcc)
	return &domainAcc, nil
}

// ListAccounts retrieves a paginated list of accounts, newest first.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY created_at DESC, account_id
		LIMIT $1 OFFSET $2;
	`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, wrapDBError(err, "failed to query accounts")
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		modelAcc, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(modelAcc))
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", rows.Err())
	}

	return accounts, nil
}

// UpdateAccount updates an account's mutable fields. The principal and the
// drawdown percentages are fixed at creation and never rewritten here.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	modelAcc := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, status = $3, current_balance = $4, upgraded_to = $5, last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.Name,
		modelAcc.Status,
		modelAcc.CurrentBalance,
		nullable(modelAcc.UpgradedTo),
		modelAcc.LastUpdatedAt,
		modelAcc.LastUpdatedBy,
	)

	if err != nil {
		return wrapDBError(err, "failed to execute update account %s", modelAcc.AccountID)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeleteAccountData removes an account together with its trades, snapshots,
// payouts and saga records in a single transaction. Unlike the multi-step
// business flows, this bulk delete is all-or-nothing.
func (r *PgxAccountRepository) DeleteAccountData(ctx context.Context, accountID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	childTables := []string{"trades", "daily_snapshots", "payouts", "operation_sagas"}
	for _, table := range childTables {
		if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE account_id = $1;`, accountID); err != nil {
			return wrapDBError(err, "failed to delete %s for account %s", table, accountID)
		}
	}

	cmdTag, err := tx.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return wrapDBError(err, "failed to delete account %s", accountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}
