package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/propledger/funded_account_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newPgxAccountRepository(dbPool),
		TradeRepo:    newPgxTradeRepository(dbPool),
		SnapshotRepo: newPgxSnapshotRepository(dbPool),
		PayoutRepo:   newPgxPayoutRepository(dbPool),
		SagaRepo:     newPgxSagaRepository(dbPool),
	}
}
