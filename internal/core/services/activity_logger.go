package services

import (
	"context"
	"log/slog"

	"github.com/propledger/funded_account_app/internal/core/domain"
	portssvc "github.com/propledger/funded_account_app/internal/core/ports/services"
	"github.com/propledger/funded_account_app/internal/middleware"
)

// slogActivityLogger emits activity events to the structured log. The real
// activity-log collaborator lives outside the core; this adapter is the
// default sink and, like any implementation of the port, never fails the
// calling operation.
type slogActivityLogger struct{}

// NewSlogActivityLogger returns an ActivityLogger backed by slog.
func NewSlogActivityLogger() portssvc.ActivityLogger {
	return &slogActivityLogger{}
}

var _ portssvc.ActivityLogger = (*slogActivityLogger)(nil)

func (l *slogActivityLogger) Record(ctx context.Context, event domain.ActivityEvent) {
	middleware.GetLoggerFromCtx(ctx).Info("activity event",
		slog.String("event_id", event.EventID),
		slog.String("type", string(event.Type)),
		slog.String("account_id", event.AccountID),
		slog.String("before_balance", event.Before.Balance),
		slog.String("before_status", string(event.Before.Status)),
		slog.String("after_balance", event.After.Balance),
		slog.String("after_status", string(event.After.Status)),
		slog.String("reason", event.Reason),
	)
}
