package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoiseRange(t *testing.T) {
	seed := SymbolSeed("NEXA")
	for i := 0; i < 5000; i++ {
		v := noise(seed, chLayerMinute, float64(i)*0.7, 60)
		require.GreaterOrEqual(t, v, -1.0)
		require.LessOrEqual(t, v, 1.0)
	}
}

func TestNoiseDeterministic(t *testing.T) {
	seed := SymbolSeed("QBIT")
	assert.Equal(t,
		noise(seed, chLayerHour, 12345.5, 3600),
		noise(seed, chLayerHour, 12345.5, 3600),
	)
}

func TestNoiseContinuousAtBucketBoundary(t *testing.T) {
	seed := SymbolSeed("FLUX")

	// The smoothstep blend weight reaches exactly 1 at the boundary, so both
	// buckets agree on the value there.
	for _, boundary := range []float64{60, 120, 300, 3600} {
		left := noise(seed, chLayerMinute, boundary-1e-6, 60)
		right := noise(seed, chLayerMinute, boundary, 60)
		assert.InDelta(t, right, left, 1e-6, "discontinuity at t=%v", boundary)
	}
}

func TestNoiseStepBounded(t *testing.T) {
	seed := SymbolSeed("VOLT")

	// Max slope of the smoothstep blend is 1.5 per bucket over a value span
	// of at most 2, so one second moves the stream by at most 3/period.
	for s := 0; s < 600; s++ {
		a := noise(seed, chLayerMinute, float64(s), 60)
		b := noise(seed, chLayerMinute, float64(s+1), 60)
		require.LessOrEqual(t, abs(b-a), 3.0/60+1e-9, "jump at second %d", s)
	}
}

func TestNoiseChannelsDecorrelated(t *testing.T) {
	seed := SymbolSeed("SOLR")

	same := 0
	for i := 0; i < 100; i++ {
		t1 := float64(i) * 37.0
		if noise(seed, chLayerHour, t1, 600) == noise(seed, chLayerTenMin, t1, 600) {
			same++
		}
	}
	assert.Zero(t, same, "distinct channels must produce distinct streams")
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
