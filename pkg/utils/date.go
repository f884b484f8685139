package utils

import "time"

// periodDays maps a lookback period to its day offset.
var periodDays = map[string]int{
	"1D": 1,
	"1W": 7,
	"1M": 30,
	"3M": 90,
	"6M": 180,
	"1Y": 365,
}

// PeriodDays returns the day offset for a fixed lookback period.
// YTD has no fixed offset and reports false.
func PeriodDays(period string) (int, bool) {
	days, ok := periodDays[period]
	return days, ok
}

// WindowStart returns the inclusive start of the lookback window for the
// given period relative to now. YTD starts at January 1 of the current year.
func WindowStart(period string, now time.Time) (time.Time, bool) {
	if period == "YTD" {
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), true
	}
	days, ok := periodDays[period]
	if !ok {
		return time.Time{}, false
	}
	return now.AddDate(0, 0, -days), true
}
