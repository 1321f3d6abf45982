package simulator

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/synthfeed/pkg/models"
)

const (
	hourlyDaysBack    = 4  // prior trading days in the hourly series
	dailyDaysBack     = 22 // prior trading days in the daily series
	prevCloseLookback = 5  // max days scanned back for a previous close
	rangeSampleStep   = 5  // minutes between day-range samples
)

// hourlyMinuteOffsets are the fixed per-day minute offsets of the
// multi-day-hourly series.
var hourlyMinuteOffsets = [...]int{0, 60, 120, 180, 240, 300, 360}

// Validate fails fast on caller contract violations. Out-of-domain inputs
// are bugs in the caller, not conditions to clamp away.
func Validate(symbol string, basePrice float64) error {
	if symbol == "" {
		return models.ErrInvalidSymbol
	}
	if basePrice <= 0 {
		return models.ErrInvalidPrice
	}
	return nil
}

// CurrentMinute returns the last completed minute index for a market state,
// capped at the final bar of the session.
func CurrentMinute(state models.MarketState) int {
	m := state.SecondsSinceOpen / 60
	if m > LastMinute {
		m = LastMinute
	}
	return m
}

// BuildSeries assembles the series for a timeframe. Everything is
// re-derived from scratch on each call; there are no running accumulators,
// so the result is identical regardless of call frequency.
func BuildSeries(symbol string, basePrice float64, tf models.Timeframe, state models.MarketState) (models.Series, error) {
	if err := Validate(symbol, basePrice); err != nil {
		return models.Series{}, err
	}

	switch tf {
	case models.TimeframeIntraday:
		return intradaySeries(symbol, basePrice, state), nil
	case models.TimeframeHourly5D:
		return hourlySeries(symbol, basePrice, state), nil
	case models.TimeframeDaily1M:
		return dailySeries(symbol, basePrice, state), nil
	default:
		return models.Series{}, fmt.Errorf("%w: %q", models.ErrInvalidTimeframe, tf)
	}
}

// intradaySeries is one bar per completed minute from the open up to now.
func intradaySeries(symbol string, basePrice float64, state models.MarketState) models.Series {
	today := state.TradingDay
	last := CurrentMinute(state)

	bars := make([]models.Bar, 0, last+1)
	for m := 0; m <= last; m++ {
		bars = append(bars, MinuteBar(symbol, basePrice, today, today, m))
	}

	return models.Series{Symbol: symbol, Timeframe: models.TimeframeIntraday, Bars: bars}
}

// hourlySeries covers the last 4 trading days plus today at fixed hourly
// minute offsets. Today's offsets beyond the current minute are omitted;
// the simulator never emits future data.
func hourlySeries(symbol string, basePrice float64, state models.MarketState) models.Series {
	today := state.TradingDay
	current := CurrentMinute(state)

	days := TradingDays(hourlyDaysBack, today)
	bars := make([]models.Bar, 0, (hourlyDaysBack+1)*len(hourlyMinuteOffsets))

	for _, day := range days {
		for _, m := range hourlyMinuteOffsets {
			bars = append(bars, MinuteBar(symbol, basePrice, day, today, m))
		}
	}
	for _, m := range hourlyMinuteOffsets {
		if m > current {
			break
		}
		bars = append(bars, MinuteBar(symbol, basePrice, today, today, m))
	}

	return models.Series{Symbol: symbol, Timeframe: models.TimeframeHourly5D, Bars: bars}
}

// dailySeries covers the closing bars of the last 22 trading days plus
// today's bar at the current minute.
func dailySeries(symbol string, basePrice float64, state models.MarketState) models.Series {
	today := state.TradingDay

	days := TradingDays(dailyDaysBack, today)
	bars := make([]models.Bar, 0, dailyDaysBack+1)

	for _, day := range days {
		bars = append(bars, MinuteBar(symbol, basePrice, day, today, LastMinute))
	}
	bars = append(bars, MinuteBar(symbol, basePrice, today, today, CurrentMinute(state)))

	return models.Series{Symbol: symbol, Timeframe: models.TimeframeDaily1M, Bars: bars}
}

// PreviousClose returns the closing price of the most recent prior trading
// day, scanning up to 5 days back to cross long weekends. Falls back to the
// reference price if no trading day is found, which cannot happen on a
// weekend-only calendar.
func PreviousClose(symbol string, basePrice float64, today int) float64 {
	for d := today - 1; d >= today-prevCloseLookback; d-- {
		if IsTradingDay(d) {
			return MinuteBar(symbol, basePrice, d, today, LastMinute).Close
		}
	}
	return Round2(basePrice)
}

// TodayOpen returns today's opening price.
func TodayOpen(symbol string, basePrice float64, today int) float64 {
	return PriceAt(symbol, basePrice, today, today, 0)
}

// DayRange returns the low and high of today's session so far, sampled
// every 5 minutes plus the current second.
func DayRange(symbol string, basePrice float64, state models.MarketState) (low, high float64) {
	today := state.TradingDay
	current := CurrentMinute(state)

	low = PriceAt(symbol, basePrice, today, today, 0)
	high = low
	for m := rangeSampleStep; m <= current; m += rangeSampleStep {
		p := PriceAt(symbol, basePrice, today, today, m*60)
		if p < low {
			low = p
		}
		if p > high {
			high = p
		}
	}

	now := PriceAt(symbol, basePrice, today, today, state.SecondsSinceOpen)
	if now < low {
		low = now
	}
	if now > high {
		high = now
	}
	return low, high
}

// CumulativeVolume sums per-minute volumes from the open through the
// current minute. Monotonically non-decreasing as the session advances.
func CumulativeVolume(symbol string, state models.MarketState) int64 {
	seed := SymbolSeed(symbol)
	current := CurrentMinute(state)

	var total int64
	for m := 0; m <= current; m++ {
		total += minuteVolume(seed, state.TradingDay, m)
	}
	return total
}

// BuildQuote derives the full quote snapshot for a symbol: price, change
// against the previous close, day range, cumulative volume and a
// human-readable elapsed-session label.
func BuildQuote(symbol string, basePrice float64, state models.MarketState, now time.Time) (models.Quote, error) {
	if err := Validate(symbol, basePrice); err != nil {
		return models.Quote{}, err
	}

	today := state.TradingDay
	price := PriceAt(symbol, basePrice, today, today, state.SecondsSinceOpen)
	prevClose := PreviousClose(symbol, basePrice, today)
	low, high := DayRange(symbol, basePrice, state)

	sessionStart := now.Add(-time.Duration(state.SecondsSinceOpen) * time.Second)

	return models.Quote{
		Symbol:        symbol,
		Price:         price,
		Open:          TodayOpen(symbol, basePrice, today),
		PreviousClose: prevClose,
		Change:        Round2(price - prevClose),
		ChangePercent: Round2((price - prevClose) / prevClose * 100),
		DayLow:        low,
		DayHigh:       high,
		DayRange:      fmt.Sprintf("%.2f - %.2f", low, high),
		Volume:        CumulativeVolume(symbol, state),
		Elapsed:       humanize.RelTime(sessionStart, now, "into the session", "before the open"),
		IsOpen:        state.IsOpen,
		Timestamp:     now,
	}, nil
}
