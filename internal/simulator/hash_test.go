package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolSeedDeterministic(t *testing.T) {
	for _, symbol := range []string{"NEXA", "QBIT", "A", "LONGTICKERNAME"} {
		assert.Equal(t, SymbolSeed(symbol), SymbolSeed(symbol), "seed must be stable for %s", symbol)
	}
}

func TestSymbolSeedDistinguishesSymbols(t *testing.T) {
	seeds := map[uint32]string{}
	for _, symbol := range []string{"NEXA", "QBIT", "FLUX", "SYNK", "PULS", "AB", "BA"} {
		seed := SymbolSeed(symbol)
		if prev, ok := seeds[seed]; ok {
			t.Fatalf("seed collision between %s and %s", prev, symbol)
		}
		seeds[seed] = symbol
	}
}

func TestSymbolSeedOrderSensitive(t *testing.T) {
	// Accumulation over character codes must be order-sensitive.
	assert.NotEqual(t, SymbolSeed("AB"), SymbolSeed("BA"))
}

func TestMix2Range(t *testing.T) {
	seed := SymbolSeed("NEXA")
	for b := uint32(0); b < 10000; b++ {
		v := mix2(seed, b)
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestMix2Deterministic(t *testing.T) {
	assert.Equal(t, mix2(12345, 678), mix2(12345, 678))
}

func TestMix2NoSerialCorrelation(t *testing.T) {
	seed := SymbolSeed("FLUX")

	prev := mix2(seed, 0)
	var sum float64
	for b := uint32(1); b <= 10000; b++ {
		v := mix2(seed, b)
		require.NotEqual(t, prev, v, "adjacent buckets must not repeat at b=%d", b)
		sum += v
		prev = v
	}

	// A well-distributed avalanche should average near 0.5.
	mean := sum / 10000
	assert.InDelta(t, 0.5, mean, 0.1)
}

func TestMix2SignedRange(t *testing.T) {
	for b := uint32(0); b < 1000; b++ {
		v := mix2Signed(42, b)
		require.GreaterOrEqual(t, v, -1.0)
		require.LessOrEqual(t, v, 1.0)
	}
}
