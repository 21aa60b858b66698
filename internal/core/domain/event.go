package domain

import "time"

// ActivityEventType classifies the structured events the core emits to the
// activity-log collaborator.
type ActivityEventType string

const (
	EventTradeAdded   ActivityEventType = "TRADE_ADDED"
	EventTradeUpdated ActivityEventType = "TRADE_UPDATED"
	EventTradeDeleted ActivityEventType = "TRADE_DELETED"
	EventBreached     ActivityEventType = "ACCOUNT_BREACHED"
	EventUpgraded     ActivityEventType = "ACCOUNT_UPGRADED"
	EventPayout       ActivityEventType = "PAYOUT_EXECUTED"
)

// AccountState is the before/after snapshot carried on an activity event.
type AccountState struct {
	Balance string        `json:"balance"`
	Phase   AccountPhase  `json:"phase"`
	Status  AccountStatus `json:"status"`
}

// ActivityEvent is emitted on trade mutation, breach transition, upgrade and
// payout. Delivery is best-effort; the core never depends on the activity log
// succeeding.
type ActivityEvent struct {
	EventID    string            `json:"eventID"` // ULID
	Type       ActivityEventType `json:"type"`
	AccountID  string            `json:"accountID"`
	Before     AccountState      `json:"beforeState"`
	After      AccountState      `json:"afterState"`
	Reason     string            `json:"reason"`
	OccurredAt time.Time         `json:"occurredAt"`
}

// StateOf captures the event-relevant fields of an account.
func StateOf(a Account) AccountState {
	return AccountState{
		Balance: a.CurrentBalance.String(),
		Phase:   a.Phase,
		Status:  a.Status,
	}
}
