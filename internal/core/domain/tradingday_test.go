package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/propledger/funded_account_app/internal/core/domain"
)

var istZone = time.FixedZone("UTC+05:30", 5*60*60+30*60)

func TestTradingDayOf_BeforeCutoffIsPreviousDay(t *testing.T) {
	ts := time.Date(2025, 3, 10, 2, 29, 59, 999_000_000, istZone)
	assert.Equal(t, "2025-03-09", domain.TradingDayOf(ts))
}

func TestTradingDayOf_AtCutoffIsCurrentDay(t *testing.T) {
	ts := time.Date(2025, 3, 10, 2, 30, 0, 0, istZone)
	assert.Equal(t, "2025-03-10", domain.TradingDayOf(ts))
}

func TestTradingDayOf_MiddayIsCurrentDay(t *testing.T) {
	ts := time.Date(2025, 3, 10, 15, 0, 0, 0, istZone)
	assert.Equal(t, "2025-03-10", domain.TradingDayOf(ts))
}

func TestTradingDayOf_MidnightBeforeCutoff(t *testing.T) {
	ts := time.Date(2025, 3, 10, 0, 0, 0, 0, istZone)
	assert.Equal(t, "2025-03-09", domain.TradingDayOf(ts))
}

func TestTradingDayOf_UTCInputIsConverted(t *testing.T) {
	// 2025-03-09T21:00:00Z is 2025-03-10T02:30:00+05:30, exactly at the cutoff.
	atCutoff := time.Date(2025, 3, 9, 21, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-03-10", domain.TradingDayOf(atCutoff))

	beforeCutoff := atCutoff.Add(-time.Second)
	assert.Equal(t, "2025-03-09", domain.TradingDayOf(beforeCutoff))
}

func TestTradingDayOf_SameInstantDifferentZonesAgree(t *testing.T) {
	instant := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t,
		domain.TradingDayOf(instant),
		domain.TradingDayOf(instant.In(istZone)))
}
