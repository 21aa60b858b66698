package mapping

import (
	"github.com/propledger/funded_account_app/internal/core/domain"
	"github.com/propledger/funded_account_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:          d.AccountID,
		Name:               d.Name,
		Phase:              models.AccountPhase(d.Phase),
		Status:             models.AccountStatus(d.Status),
		Principal:          d.Principal,
		CurrentBalance:     d.CurrentBalance,
		MaxDrawdownPct:     d.MaxDrawdownPct,
		DailyDrawdownPct:   d.DailyDrawdownPct,
		ProfitTargetPct:    d.ProfitTargetPct,
		ProfitTargetAmount: d.ProfitTargetAmount,
		ProfitSharePct:     d.ProfitSharePct,
		UpgradedFrom:       d.UpgradedFrom,
		UpgradedTo:         d.UpgradedTo,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:          m.AccountID,
		Name:               m.Name,
		Phase:              domain.AccountPhase(m.Phase),
		Status:             domain.AccountStatus(m.Status),
		Principal:          m.Principal,
		CurrentBalance:     m.CurrentBalance,
		MaxDrawdownPct:     m.MaxDrawdownPct,
		DailyDrawdownPct:   m.DailyDrawdownPct,
		ProfitTargetPct:    m.ProfitTargetPct,
		ProfitTargetAmount: m.ProfitTargetAmount,
		ProfitSharePct:     m.ProfitSharePct,
		UpgradedFrom:       m.UpgradedFrom,
		UpgradedTo:         m.UpgradedTo,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
