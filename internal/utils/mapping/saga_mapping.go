package mapping

import (
	"github.com/propledger/funded_account_app/internal/core/domain"
	"github.com/propledger/funded_account_app/internal/models"
)

// ToModelSaga converts a domain OperationSaga to a model OperationSaga
func ToModelSaga(d domain.OperationSaga) models.OperationSaga {
	return models.OperationSaga{
		SagaID:        d.SagaID,
		Kind:          string(d.Kind),
		AccountID:     d.AccountID,
		Step:          d.Step,
		TotalSteps:    d.TotalSteps,
		State:         string(d.State),
		Detail:        d.Detail,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainSaga converts a model OperationSaga to a domain OperationSaga
func ToDomainSaga(m models.OperationSaga) domain.OperationSaga {
	return domain.OperationSaga{
		SagaID:        m.SagaID,
		Kind:          domain.SagaKind(m.Kind),
		AccountID:     m.AccountID,
		Step:          m.Step,
		TotalSteps:    m.TotalSteps,
		State:         domain.SagaState(m.State),
		Detail:        m.Detail,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}
