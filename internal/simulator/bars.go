package simulator

import (
	"math"

	"github.com/synthfeed/pkg/models"
)

// minuteSampleOffsets are the seconds sampled within a minute to synthesize
// a bar: open is the first sample, close the last, high/low the extrema.
var minuteSampleOffsets = [...]int{0, 12, 24, 36, 48, 59}

// Volume model. The magic constants are hand-tuned for the canonical
// U-shaped intraday curve and are preserved as-is for replay stability.
const (
	volumeDayBaseMin  = 80000.0
	volumeDayBaseSpan = 120000.0 // day base falls in [80k, 200k)
	volumeMinuteMin   = 0.5
	volumeMinuteSpan  = 1.5 // per-minute multiplier in [0.5x, 2x)
	volumeOpenBias    = 1.5
	volumeCloseBias   = 1.2
	volumeBiasDecay   = 30.0 // minutes until an open/close bias decays by e
)

// MinuteBar synthesizes the OHLCV bar for one minute of a trading day.
// Everything derives from hashes of (symbol, day, minute); no external
// randomness, so the bar is identical on every evaluation.
func MinuteBar(symbol string, basePrice float64, day, today, minute int) models.Bar {
	if minute < 0 {
		minute = 0
	}
	if minute > LastMinute {
		minute = LastMinute
	}

	base := minute * 60
	open := PriceAt(symbol, basePrice, day, today, base+minuteSampleOffsets[0])
	high, low := open, open
	closePx := open

	for _, off := range minuteSampleOffsets[1:] {
		p := PriceAt(symbol, basePrice, day, today, base+off)
		if p > high {
			high = p
		}
		if p < low {
			low = p
		}
		closePx = p
	}

	return models.Bar{
		Symbol:    symbol,
		Timestamp: BarTime(day, minute),
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePx,
		Volume:    minuteVolume(SymbolSeed(symbol), day, minute),
	}
}

// minuteVolume estimates traded volume for one minute: a per-day base
// magnitude times a per-minute multiplier, biased up near the open and the
// close, spread over the 390 minutes of the session.
func minuteVolume(seed uint32, day, minute int) int64 {
	dayBase := volumeDayBaseMin + mix2(seed^chVolumeDay, dayKey(day))*volumeDayBaseSpan
	minuteMult := volumeMinuteMin + mix2(seed^chVolumeMin, dayKey(day*1440+minute))*volumeMinuteSpan

	bias := 1 +
		volumeOpenBias*math.Exp(-float64(minute)/volumeBiasDecay) +
		volumeCloseBias*math.Exp(-float64(LastMinute-minute)/volumeBiasDecay)

	v := int64(dayBase * minuteMult * bias / SessionMinutes)
	if v < 1 {
		v = 1
	}
	return v
}
