package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/propledger/funded_account_app/internal/core/domain"
)

func TestBreakdownFor_SplitsProfit(t *testing.T) {
	b := domain.BreakdownFor(
		decimal.NewFromInt(11000),
		decimal.NewFromInt(10000),
		decimal.NewFromInt(80),
	)

	assert.True(t, b.TotalProfit.Equal(decimal.NewFromInt(1000)))
	assert.True(t, b.YourShare.Equal(decimal.NewFromInt(800)))
	assert.True(t, b.CompanyShare.Equal(decimal.NewFromInt(200)))
	assert.True(t, b.Available.Equal(decimal.NewFromInt(800)))
}

func TestBreakdownFor_NoProfitNothingDistributable(t *testing.T) {
	b := domain.BreakdownFor(
		decimal.NewFromInt(9500),
		decimal.NewFromInt(10000),
		decimal.NewFromInt(80),
	)

	assert.True(t, b.TotalProfit.Equal(decimal.NewFromInt(-500)))
	assert.True(t, b.Available.IsZero())
	assert.True(t, b.YourShare.IsZero())
	assert.True(t, b.CompanyShare.IsZero())
}

func TestBreakdownFor_BreakEven(t *testing.T) {
	b := domain.BreakdownFor(
		decimal.NewFromInt(10000),
		decimal.NewFromInt(10000),
		decimal.NewFromInt(80),
	)

	assert.True(t, b.TotalProfit.IsZero())
	assert.True(t, b.Available.IsZero())
}

func TestTrade_PnL(t *testing.T) {
	trade := domain.Trade{
		OldBalance: decimal.NewFromInt(10000),
		NewBalance: decimal.NewFromInt(10250),
	}
	assert.True(t, trade.PnL().Equal(decimal.NewFromInt(250)))
}
