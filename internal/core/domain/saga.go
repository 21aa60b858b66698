package domain

import "time"

// SagaKind identifies which multi-step operation a saga record tracks.
type SagaKind string

const (
	SagaUpgrade SagaKind = "UPGRADE"
	SagaPayout  SagaKind = "PAYOUT"
)

// SagaState is the lifecycle of a saga record. A FAILED saga is left in place
// for inspection and manual repair; nothing rolls back committed steps.
type SagaState string

const (
	SagaPending   SagaState = "PENDING"
	SagaCompleted SagaState = "COMPLETED"
	SagaFailed    SagaState = "FAILED"
)

// OperationSaga is a short-lived persisted record of a multi-step operation
// (upgrade: create-then-retire, payout: record-then-reset-then-snapshot).
// Each step commits independently; Step records the last committed one so a
// failure mid-sequence is observable rather than silently inconsistent.
type OperationSaga struct {
	SagaID        string    `json:"sagaID"` // Primary Key (UUID)
	Kind          SagaKind  `json:"kind"`
	AccountID     string    `json:"accountID"`
	Step          int       `json:"step"` // Last committed step, 0..TotalSteps
	TotalSteps    int       `json:"totalSteps"`
	State         SagaState `json:"state"`
	Detail        string    `json:"detail"` // Failure reason or step annotation
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
