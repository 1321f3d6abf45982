package simulator

import (
	"math"
)

// Channel discriminators. Distinct channels decorrelate noise streams drawn
// from the same seed and time coordinate.
const (
	chLayerHour   uint32 = 0x5bd1e995
	chLayerTenMin uint32 = 0x1b873593
	chLayerMinute uint32 = 0xcc9e2d51
	chLayerTenSec uint32 = 0x85ebca6b
	chDailyDrift  uint32 = 0xc2b2ae35
	chTrendArc    uint32 = 0x27d4eb2f
	chVolumeDay   uint32 = 0x165667b1
	chVolumeMin   uint32 = 0x9e3779b1
	chExtendDrift uint32 = 0xd6e8feb8
	chExtendNoise uint32 = 0xa2aa033b
	chInterpolate uint32 = 0x94d049bb
)

// smoothstep is the cubic Hermite blend 3u^2 - 2u^3 on [0,1].
func smoothstep(u float64) float64 {
	return u * u * (3 - 2*u)
}

// noise returns band-limited value noise in [-1,1] at time coordinate t.
// It hashes one value per period-sized bucket and blends neighbours with
// smoothstep, so the stream is continuous in t: at a bucket boundary the
// blend weight reaches exactly 1 and both buckets agree on the value.
func noise(seed, channel uint32, t, period float64) float64 {
	pos := t / period
	b := math.Floor(pos)
	u := smoothstep(pos - b)

	b0 := int64(b)
	v0 := mix2Signed(seed^channel, uint32(b0))
	v1 := mix2Signed(seed^channel, uint32(b0+1))

	return v0 + (v1-v0)*u
}
