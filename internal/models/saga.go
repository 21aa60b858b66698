package models

import "time"

// OperationSaga is the storage representation of a multi-step operation
// record.
type OperationSaga struct {
	SagaID        string    `db:"saga_id"`
	Kind          string    `db:"kind"`
	AccountID     string    `db:"account_id"`
	Step          int       `db:"step"`
	TotalSteps    int       `db:"total_steps"`
	State         string    `db:"state"`
	Detail        string    `db:"detail"` // Nullable
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
