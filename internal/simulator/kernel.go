package simulator

import (
	"math"
)

// Session geometry: a 6.5 hour session (9:30-16:00), 390 one-minute bars.
const (
	SessionSeconds = 23400
	SessionMinutes = 390
	LastMinute     = SessionMinutes - 1

	secondsPerDay = 86400
)

// Price kernel tuning. These constants are load-bearing: generated history
// must replay identically across versions, so they are not configurable.
const (
	dailyDriftRate   = 0.015 // backward walk undoes a +/-1.5%/day drift
	dayOpenFloorFrac = 0.1   // stability guard against runaway decay
	dayOpenResetFrac = 0.3   // reset when an intermediate goes non-positive
	baseVolFrac      = 0.012 // intraday volatility as a fraction of day-open
	priceFloorFrac   = 0.9   // intraday prices never drop below 90% of open
	trendArcFrac     = 0.008 // half-sine trend arc amplitude bound
)

// priceLayers are the noise layers composed by the price kernel: coarse
// swings dominate, fine layers add texture.
var priceLayers = [...]struct {
	channel uint32
	period  float64
	weight  float64
}{
	{chLayerHour, 3600, 1.00},
	{chLayerTenMin, 600, 0.55},
	{chLayerMinute, 60, 0.30},
	{chLayerTenSec, 10, 0.15},
}

// Round2 rounds a monetary value to 2 decimal places, the precision every
// emitted price carries.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DayOpenPrice returns the synthetic opening price for a trading day. Today
// and future days pass the reference price through exactly. Past days walk
// backward from today one day at a time, each step dividing out a
// hash-derived drift, so a consistent history exists without storing any of
// it. The walk clamps to 0.1x base and resets to 0.3x base if an
// intermediate value goes non-positive.
func DayOpenPrice(seed uint32, basePrice float64, day, today int) float64 {
	if day >= today {
		return basePrice
	}

	price := basePrice
	for d := today - 1; d >= day; d-- {
		r := mix2Signed(seed^chDailyDrift, dayKey(d))
		price /= 1 + r*dailyDriftRate
		if price <= 0 {
			price = dayOpenResetFrac * basePrice
		}
		if floor := dayOpenFloorFrac * basePrice; price < floor {
			price = floor
		}
	}
	return price
}

// PriceAt returns the simulated price for a symbol at a given second of a
// trading day's session. Four noise layers at periods of an hour down to ten
// seconds ride on the day-open price, plus a half-sine trend arc peaking
// mid-session. The layer sum is anchored at second 0, so the session opens
// exactly at the day-open price. The result is floor-clamped to 90% of
// day-open and rounded to 2 decimals.
func PriceAt(symbol string, basePrice float64, day, today, sec int) float64 {
	seed := SymbolSeed(symbol)
	open := DayOpenPrice(seed, basePrice, day, today)

	if sec < 0 {
		sec = 0
	}
	if sec > SessionSeconds {
		sec = SessionSeconds
	}

	t := float64(day)*secondsPerDay + float64(sec)
	t0 := float64(day) * secondsPerDay

	var layered, anchor float64
	for _, l := range priceLayers {
		layered += l.weight * noise(seed, l.channel, t, l.period)
		anchor += l.weight * noise(seed, l.channel, t0, l.period)
	}

	arc := mix2Signed(seed^chTrendArc, dayKey(day)) * trendArcFrac * open
	price := open +
		(layered-anchor)*baseVolFrac*open +
		arc*math.Sin(math.Pi*float64(sec)/SessionSeconds)

	if floor := priceFloorFrac * open; price < floor {
		price = floor
	}
	return Round2(price)
}
