package dto

import (
	"time"

	"github.com/propledger/funded_account_app/internal/core/domain"
)

// OperationSagaResponse reports the progress of a multi-step operation
// (upgrade or payout) for an account.
type OperationSagaResponse struct {
	SagaID        string           `json:"sagaID"`
	Kind          domain.SagaKind  `json:"kind"`
	AccountID     string           `json:"accountID"`
	Step          int              `json:"step"`
	TotalSteps    int              `json:"totalSteps"`
	State         domain.SagaState `json:"state"`
	Detail        string           `json:"detail,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
}

// ToOperationSagaResponse converts a domain.OperationSaga to its response DTO
func ToOperationSagaResponse(s *domain.OperationSaga) OperationSagaResponse {
	return OperationSagaResponse{
		SagaID:        s.SagaID,
		Kind:          s.Kind,
		AccountID:     s.AccountID,
		Step:          s.Step,
		TotalSteps:    s.TotalSteps,
		State:         s.State,
		Detail:        s.Detail,
		CreatedAt:     s.CreatedAt,
		LastUpdatedAt: s.LastUpdatedAt,
	}
}

// ToListOperationSagaResponse converts a slice of domain.OperationSaga to response DTOs
func ToListOperationSagaResponse(sagas []domain.OperationSaga) []OperationSagaResponse {
	res := make([]OperationSagaResponse, len(sagas))
	for i, s := range sagas {
		res[i] = ToOperationSagaResponse(&s)
	}
	return res
}

// ListOperationsResponse wraps the list of unfinished operations.
type ListOperationsResponse struct {
	Operations []OperationSagaResponse `json:"operations"`
}
