package services

import (
	portsrepo "github.com/propledger/funded_account_app/internal/core/ports/repositories"
	portssvc "github.com/propledger/funded_account_app/internal/core/ports/services"
	"github.com/propledger/funded_account_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	activity := NewSlogActivityLogger()

	// Leaf services first: risk has no service dependencies, the
	// recalculator only needs stores and the event sink.
	container.Risk = NewRiskService(repos.SnapshotRepo)
	container.Recalculator = NewRecalcService(repos.AccountRepo, repos.TradeRepo, activity)

	container.Account = NewAccountService(repos.AccountRepo, cfg.Firm)
	container.Trade = NewTradeService(repos.TradeRepo, repos.AccountRepo, container.Risk, container.Recalculator, activity)
	container.Progression = NewProgressionService(repos.AccountRepo, repos.SagaRepo, activity, cfg.Firm)
	container.Payout = NewPayoutService(repos.AccountRepo, repos.PayoutRepo, repos.SagaRepo, container.Risk, activity)

	return container
}
