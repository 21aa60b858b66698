package services

import (
	"context"

	"github.com/propledger/funded_account_app/internal/core/domain"
)

// ActivityLogger receives the structured events the core emits on trade
// mutation, breach transition, upgrade and payout. Implementations must not
// fail the calling operation; delivery is best-effort.
type ActivityLogger interface {
	Record(ctx context.Context, event domain.ActivityEvent)
}

// ServiceContainer holds all services needed by the handlers
type ServiceContainer struct {
	Account      AccountSvcFacade
	Trade        TradeSvcFacade
	Recalculator Recalculator
	Risk         RiskSvcFacade
	Progression  ProgressionSvcFacade
	Payout       PayoutSvcFacade
}
