package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthfeed/pkg/models"
)

func templatePoints(t *testing.T) []models.PricePoint {
	t.Helper()

	series, err := BuildSeries("NEXA", 185.0, models.TimeframeIntraday, stateAt(testDay, SessionSeconds))
	require.NoError(t, err)
	return Points(series)
}

func TestExtendPeriodsPreservesCurrentPeriod(t *testing.T) {
	template := templatePoints(t)

	extended, err := ExtendPeriods("NEXA", template, 10)
	require.NoError(t, err)
	require.Len(t, extended, 10*len(template))

	// The most recent period's values must be exactly the unmodified input.
	tail := extended[len(extended)-len(template):]
	for i, p := range tail {
		require.Equal(t, template[i].Price, p.Price, "price changed at point %d", i)
	}
	assert.Equal(t, template[len(template)-1].Time, extended[len(extended)-1].Time)
}

func TestExtendPeriodsRelabelsPriorPeriods(t *testing.T) {
	template := templatePoints(t)

	extended, err := ExtendPeriods("NEXA", template, 10)
	require.NoError(t, err)

	start := template[0].Time
	prior := extended[:len(extended)-len(template)]
	for i, p := range prior {
		require.True(t, p.Time.Before(start), "prior point %d not shifted back", i)
		require.Greater(t, p.Price, 0.0)
	}

	for i := 1; i < len(extended); i++ {
		require.True(t, extended[i].Time.After(extended[i-1].Time),
			"extended timeline must be strictly increasing at %d", i)
	}
}

func TestExtendPeriodsDeterministic(t *testing.T) {
	template := templatePoints(t)

	a, err := ExtendPeriods("NEXA", template, 5)
	require.NoError(t, err)
	b, err := ExtendPeriods("NEXA", template, 5)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestExtendPeriodsDegenerateInputs(t *testing.T) {
	template := templatePoints(t)

	single, err := ExtendPeriods("NEXA", template, 1)
	require.NoError(t, err)
	assert.Equal(t, template, single)

	short, err := ExtendPeriods("NEXA", template[:1], 10)
	require.NoError(t, err)
	assert.Len(t, short, 1)

	_, err = ExtendPeriods("", template, 10)
	require.ErrorIs(t, err, models.ErrInvalidSymbol)
}

func TestInterpolateInsertsFlaggedPoints(t *testing.T) {
	template := templatePoints(t)[:5]
	seed := SymbolSeed("NEXA")

	out := Interpolate(template, 3, seed)
	require.Len(t, out, 5+4*3)

	interpolated := 0
	for _, p := range out {
		if p.Interpolated {
			interpolated++
		}
	}
	assert.Equal(t, 12, interpolated)

	// Real samples survive in order and untouched.
	assert.Equal(t, template, Authoritative(out))

	for i := 1; i < len(out); i++ {
		require.False(t, out[i].Time.Before(out[i-1].Time), "interpolated timeline out of order at %d", i)
	}
}

func TestInterpolateDeterministic(t *testing.T) {
	template := templatePoints(t)[:10]
	seed := SymbolSeed("QBIT")

	assert.Equal(t, Interpolate(template, 2, seed), Interpolate(template, 2, seed))
}

func TestInterpolateNoSteps(t *testing.T) {
	template := templatePoints(t)[:4]
	assert.Equal(t, template, Interpolate(template, 0, SymbolSeed("NEXA")))
}

func TestAuthoritativeFiltersInterpolated(t *testing.T) {
	points := []models.PricePoint{
		{Price: 1},
		{Price: 2, Interpolated: true},
		{Price: 3},
	}

	real := Authoritative(points)
	require.Len(t, real, 2)
	assert.Equal(t, 1.0, real[0].Price)
	assert.Equal(t, 3.0, real[1].Price)
}
