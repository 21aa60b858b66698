package mapping

import (
	"github.com/propledger/funded_account_app/internal/core/domain"
	"github.com/propledger/funded_account_app/internal/models"
)

// ToModelTrade converts a domain Trade to a model Trade
func ToModelTrade(d domain.Trade) models.Trade {
	return models.Trade{
		TradeID:     d.TradeID,
		AccountID:   d.AccountID,
		Instrument:  d.Instrument,
		TradeType:   string(d.TradeType),
		OldBalance:  d.OldBalance,
		NewBalance:  d.NewBalance,
		ExecutedAt:  d.ExecutedAt,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTrade converts a model Trade to a domain Trade
func ToDomainTrade(m models.Trade) domain.Trade {
	return domain.Trade{
		TradeID:     m.TradeID,
		AccountID:   m.AccountID,
		Instrument:  m.Instrument,
		TradeType:   domain.TradeType(m.TradeType),
		OldBalance:  m.OldBalance,
		NewBalance:  m.NewBalance,
		ExecutedAt:  m.ExecutedAt,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
