package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/propledger/funded_account_app/internal/core/domain"
)

func newTestAccount(principal, balance int64) domain.Account {
	return domain.Account{
		AccountID:      "acc-1",
		Phase:          domain.PhaseEval1,
		Status:         domain.StatusActive,
		Principal:      decimal.NewFromInt(principal),
		CurrentBalance: decimal.NewFromInt(balance),
		MaxDrawdownPct: decimal.NewFromInt(10),
	}
}

func TestAccountPhase_Next(t *testing.T) {
	next, ok := domain.PhaseEval1.Next()
	assert.True(t, ok)
	assert.Equal(t, domain.PhaseEval2, next)

	next, ok = domain.PhaseEval2.Next()
	assert.True(t, ok)
	assert.Equal(t, domain.PhaseFunded, next)

	_, ok = domain.PhaseFunded.Next()
	assert.False(t, ok)

	_, ok = domain.AccountPhase("BOGUS").Next()
	assert.False(t, ok)
}

func TestAccount_Profit(t *testing.T) {
	acc := newTestAccount(100000, 103500)
	assert.True(t, acc.Profit().Equal(decimal.NewFromInt(3500)))

	acc = newTestAccount(100000, 95000)
	assert.True(t, acc.Profit().Equal(decimal.NewFromInt(-5000)))
}

func TestAccount_MaxDrawdownAmount(t *testing.T) {
	acc := newTestAccount(100000, 100000)
	assert.True(t, acc.MaxDrawdownAmount().Equal(decimal.NewFromInt(10000)))
}

func TestAccount_IsMaxBreached_BoundaryIsExclusive(t *testing.T) {
	// principal 100000, maxDrawdownPct 10: the floor sits at 90000.
	assert.False(t, newTestAccount(100000, 100000).IsMaxBreached())
	assert.False(t, newTestAccount(100000, 90001).IsMaxBreached())

	// Sitting exactly on the floor is not a breach.
	assert.False(t, newTestAccount(100000, 90000).IsMaxBreached())

	assert.True(t, newTestAccount(100000, 89999).IsMaxBreached())
	assert.True(t, newTestAccount(100000, 0).IsMaxBreached())
}

func TestDailyDDLevelFor(t *testing.T) {
	level := domain.DailyDDLevelFor(
		decimal.NewFromInt(102000),
		decimal.NewFromInt(100000),
		decimal.NewFromInt(5),
	)
	assert.True(t, level.Equal(decimal.NewFromInt(97000)))
}
