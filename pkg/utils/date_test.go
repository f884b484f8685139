package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodDays(t *testing.T) {
	cases := map[string]int{
		"1D": 1,
		"1W": 7,
		"1M": 30,
		"3M": 90,
		"6M": 180,
		"1Y": 365,
	}
	for period, want := range cases {
		days, ok := PeriodDays(period)
		assert.True(t, ok, period)
		assert.Equal(t, want, days, period)
	}

	_, ok := PeriodDays("YTD")
	assert.False(t, ok)
	_, ok = PeriodDays("2W")
	assert.False(t, ok)
}

func TestWindowStart_FixedPeriods(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	start, ok := WindowStart("1D", now)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 14, 12, 0, 0, 0, time.UTC), start)

	start, ok = WindowStart("1Y", now)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2023, 6, 16, 12, 0, 0, 0, time.UTC), start)
}

func TestWindowStart_YTD(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	start, ok := WindowStart("YTD", now)
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestWindowStart_UnknownPeriod(t *testing.T) {
	_, ok := WindowStart("5Y", time.Now())
	assert.False(t, ok)
}
