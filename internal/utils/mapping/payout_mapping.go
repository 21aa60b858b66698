package mapping

import (
	"github.com/propledger/funded_account_app/internal/core/domain"
	"github.com/propledger/funded_account_app/internal/models"
)

// ToModelPayout converts a domain Payout to a model Payout
func ToModelPayout(d domain.Payout) models.Payout {
	return models.Payout{
		PayoutID:           d.PayoutID,
		AccountID:          d.AccountID,
		PayoutAmount:       d.PayoutAmount,
		OldBalance:         d.OldBalance,
		NewBalance:         d.NewBalance,
		ProfitShareApplied: d.ProfitShareApplied,
		RequestedAt:        d.RequestedAt,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayout converts a model Payout to a domain Payout
func ToDomainPayout(m models.Payout) domain.Payout {
	return domain.Payout{
		PayoutID:           m.PayoutID,
		AccountID:          m.AccountID,
		PayoutAmount:       m.PayoutAmount,
		OldBalance:         m.OldBalance,
		NewBalance:         m.NewBalance,
		ProfitShareApplied: m.ProfitShareApplied,
		RequestedAt:        m.RequestedAt,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
