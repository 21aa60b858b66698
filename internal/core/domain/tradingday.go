package domain

import "time"

// The trading day is a 24-hour accounting window bounded by a fixed 02:30
// cutoff in a fixed UTC+5:30 civil time, distinct from the calendar day.
// [02:30 of day N, 02:30 of day N+1) all map to day N's key.

// tradingZone is the fixed-offset civil time the cutoff is expressed in.
var tradingZone = time.FixedZone("UTC+05:30", 5*60*60+30*60)

// cutoffMinutes is 02:30 expressed as minutes past civil midnight.
const cutoffMinutes = 2*60 + 30

// tradingDayLayout formats a trading-day key.
const tradingDayLayout = "2006-01-02"

// TradingDayOf maps a timestamp to its trading-day key. Instants strictly
// before the 02:30 civil cutoff belong to the previous calendar day; the
// cutoff instant itself belongs to the new day.
func TradingDayOf(ts time.Time) string {
	civil := ts.In(tradingZone)
	if civil.Hour()*60+civil.Minute() < cutoffMinutes {
		civil = civil.AddDate(0, 0, -1)
	}
	return civil.Format(tradingDayLayout)
}
