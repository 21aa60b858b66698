package mapping

import (
	"github.com/propledger/funded_account_app/internal/core/domain"
	"github.com/propledger/funded_account_app/internal/models"
)

// ToModelSnapshot converts a domain DailySnapshot to a model DailySnapshot
func ToModelSnapshot(d domain.DailySnapshot) models.DailySnapshot {
	return models.DailySnapshot{
		SnapshotID:      d.SnapshotID,
		AccountID:       d.AccountID,
		TradingDay:      d.TradingDay,
		StartingBalance: d.StartingBalance,
		DailyDDLevel:    d.DailyDDLevel,
		IsPayoutReset:   d.IsPayoutReset,
		IsManual:        d.IsManual,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSnapshot converts a model DailySnapshot to a domain DailySnapshot
func ToDomainSnapshot(m models.DailySnapshot) domain.DailySnapshot {
	return domain.DailySnapshot{
		SnapshotID:      m.SnapshotID,
		AccountID:       m.AccountID,
		TradingDay:      m.TradingDay,
		StartingBalance: m.StartingBalance,
		DailyDDLevel:    m.DailyDDLevel,
		IsPayoutReset:   m.IsPayoutReset,
		IsManual:        m.IsManual,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
