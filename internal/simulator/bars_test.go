package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinuteBarConsistency(t *testing.T) {
	base := 185.0

	for _, day := range []int{testDay, testDay - 1, testDay - 4, testDay - 22} {
		for minute := 0; minute <= LastMinute; minute += 7 {
			bar := MinuteBar("NEXA", base, day, testDay, minute)

			require.LessOrEqual(t, bar.Low, bar.Open, "day %d minute %d", day, minute)
			require.LessOrEqual(t, bar.Low, bar.Close, "day %d minute %d", day, minute)
			require.GreaterOrEqual(t, bar.High, bar.Open, "day %d minute %d", day, minute)
			require.GreaterOrEqual(t, bar.High, bar.Close, "day %d minute %d", day, minute)
			require.Greater(t, bar.Low, 0.0)
		}
	}
}

func TestMinuteBarDeterministic(t *testing.T) {
	a := MinuteBar("QBIT", 92.5, testDay, testDay, 195)
	b := MinuteBar("QBIT", 92.5, testDay, testDay, 195)
	assert.Equal(t, a, b)
}

func TestMinuteBarOpenCloseSampling(t *testing.T) {
	bar := MinuteBar("FLUX", 310.0, testDay, testDay, 30)

	assert.Equal(t, PriceAt("FLUX", 310.0, testDay, testDay, 30*60), bar.Open)
	assert.Equal(t, PriceAt("FLUX", 310.0, testDay, testDay, 30*60+59), bar.Close)
}

func TestMinuteBarVolumePositive(t *testing.T) {
	seed := SymbolSeed("VOLT")
	for minute := 0; minute <= LastMinute; minute++ {
		v := minuteVolume(seed, testDay, minute)
		require.Greater(t, v, int64(0), "minute %d", minute)
	}
}

func TestMinuteVolumeUShape(t *testing.T) {
	seed := SymbolSeed("NEXA")

	// The open/close biases should make the session edges busier than the
	// middle on average.
	window := func(lo, hi int) float64 {
		var sum int64
		for m := lo; m < hi; m++ {
			sum += minuteVolume(seed, testDay, m)
		}
		return float64(sum) / float64(hi-lo)
	}

	openAvg := window(0, 30)
	midAvg := window(180, 210)
	closeAvg := window(360, 390)

	assert.Greater(t, openAvg, midAvg, "open should outrun midday volume")
	assert.Greater(t, closeAvg, midAvg, "close should outrun midday volume")
}

func TestMinuteBarClampsMinuteIndex(t *testing.T) {
	assert.Equal(t,
		MinuteBar("NEXA", 185.0, testDay, testDay, 0),
		MinuteBar("NEXA", 185.0, testDay, testDay, -5),
	)
	assert.Equal(t,
		MinuteBar("NEXA", 185.0, testDay, testDay, LastMinute),
		MinuteBar("NEXA", 185.0, testDay, testDay, LastMinute+10),
	)
}

func TestMinuteBarTimestamps(t *testing.T) {
	bar0 := MinuteBar("NEXA", 185.0, testDay, testDay, 0)
	bar1 := MinuteBar("NEXA", 185.0, testDay, testDay, 1)

	assert.True(t, bar1.Timestamp.After(bar0.Timestamp))
	assert.Equal(t, 9, bar0.Timestamp.Hour())
	assert.Equal(t, 30, bar0.Timestamp.Minute())
}
