// Package simulator synthesizes deterministic market data: second-resolution
// prices, minute OHLCV bars and calendar-aware multi-day series, all replayable
// from (symbol, base price, time) alone. Every function here is pure; nothing
// is cached or mutated, so recomputation is always safe and cheap.
package simulator

// SymbolSeed derives a stable 32-bit seed from a ticker symbol. Same symbol,
// same seed, on every platform: all arithmetic wraps modulo 2^32. Collisions
// between distinct symbols are acceptable; seeds only need distribution, not
// uniqueness.
func SymbolSeed(symbol string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(symbol); i++ {
		h ^= uint32(symbol[i])
		h *= 16777619
	}
	return h
}

// mix2 maps (a, b) to a well-distributed value in [0,1) via a two-round
// integer avalanche. Adjacent b values for a fixed a show no serial
// correlation, which is what the noise layer relies on.
func mix2(a, b uint32) float64 {
	x := a*2654435761 ^ b*2246822519
	x ^= x >> 15
	x *= 2246822519
	x ^= x >> 13
	x *= 3266489917
	x ^= x >> 16
	return float64(x) / (1 << 32)
}

// mix2Signed rescales mix2 to [-1,1].
func mix2Signed(a, b uint32) float64 {
	return mix2(a, b)*2 - 1
}

// dayKey converts a (possibly negative) trading-day index to a hash input.
func dayKey(day int) uint32 {
	return uint32(int32(day))
}
