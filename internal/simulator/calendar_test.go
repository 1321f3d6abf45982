package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthfeed/pkg/config"
)

func TestDayFromTimeRoundTrip(t *testing.T) {
	date := time.Date(2024, 6, 14, 15, 42, 7, 0, time.UTC)
	day := DayFromTime(date)

	midnight := DayTime(day)
	assert.Equal(t, 2024, midnight.Year())
	assert.Equal(t, time.June, midnight.Month())
	assert.Equal(t, 14, midnight.Day())
	assert.Equal(t, time.Friday, midnight.Weekday())
}

func TestIsTradingDayMatchesWeekday(t *testing.T) {
	// One full week starting Monday 2024-06-10.
	monday := DayFromTime(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))

	for offset := 0; offset < 7; offset++ {
		day := monday + offset
		wd := DayTime(day).Weekday()
		want := wd != time.Saturday && wd != time.Sunday
		require.Equal(t, want, IsTradingDay(day), "weekday %s", wd)
	}
}

func TestTradingDaysProperties(t *testing.T) {
	before := DayFromTime(time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC))
	days := TradingDays(22, before)

	require.Len(t, days, 22)
	for i, d := range days {
		require.True(t, IsTradingDay(d), "weekend day %s in calendar", DayTime(d).Weekday())
		require.Less(t, d, before)
		if i > 0 {
			require.Greater(t, d, days[i-1], "calendar must be strictly increasing")
		}
	}
}

func TestTradingDaysSkipWeekendBeforeMonday(t *testing.T) {
	// Enumerating before a Monday must return the prior Friday as the most
	// recent entry.
	monday := DayFromTime(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	days := TradingDays(22, monday)

	require.Len(t, days, 22)
	latest := DayTime(days[len(days)-1])
	assert.Equal(t, time.Friday, latest.Weekday())
	assert.Equal(t, 7, latest.Day())
	assert.Equal(t, time.June, latest.Month())
}

func TestTradingDaysZeroCount(t *testing.T) {
	assert.Empty(t, TradingDays(0, testDay))
}

func marketClockAt(t *testing.T, hour, min int) *MarketClock {
	t.Helper()

	cfg := &config.SessionConfig{SimulatedDate: "2024-06-14", Timezone: "UTC"}
	now := time.Date(2026, 2, 3, hour, min, 0, 0, time.UTC)
	mc, err := NewMarketClock(cfg, FixedClock(now))
	require.NoError(t, err)
	return mc
}

func TestMarketClockSessionWindow(t *testing.T) {
	tests := []struct {
		name    string
		hour    int
		min     int
		wantSec int
		open    bool
	}{
		{"before open clamps to zero", 8, 0, 0, false},
		{"at open", 9, 30, 0, true},
		{"mid session", 12, 0, 9000, true},
		{"at close", 16, 0, SessionSeconds, true},
		{"after close clamps to session end", 20, 0, SessionSeconds, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := marketClockAt(t, tt.hour, tt.min).State()
			assert.Equal(t, tt.wantSec, state.SecondsSinceOpen)
			assert.Equal(t, tt.open, state.IsOpen)
		})
	}
}

func TestMarketClockUsesSimulatedDay(t *testing.T) {
	mc := marketClockAt(t, 12, 0)
	want := DayFromTime(time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, want, mc.Day())
	assert.Equal(t, want, mc.State().TradingDay)
}

func TestMarketClockRejectsBadConfig(t *testing.T) {
	_, err := NewMarketClock(&config.SessionConfig{SimulatedDate: "June 14"}, nil)
	require.Error(t, err)

	_, err = NewMarketClock(&config.SessionConfig{SimulatedDate: "2024-06-14", Timezone: "Mars/Olympus"}, nil)
	require.Error(t, err)
}
