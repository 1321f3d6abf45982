package simulator

import (
	"fmt"
	"time"

	"github.com/synthfeed/pkg/config"
	"github.com/synthfeed/pkg/models"
)

// sessionOpenSecond is 09:30 expressed as seconds since local midnight.
const sessionOpenSecond = 9*3600 + 30*60

// Clock supplies wall-clock time. The core never reads ambient time; callers
// inject a clock so every computation stays replayable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// FixedClock returns a Clock pinned to a single instant.
func FixedClock(t time.Time) Clock { return fixedClock{t} }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// DayFromTime converts a timestamp to its trading-day index: whole days
// since the Unix epoch, taken from the UTC calendar date.
func DayFromTime(t time.Time) int {
	u := t.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return int(midnight.Unix() / secondsPerDay)
}

// DayTime returns UTC midnight of a trading-day index.
func DayTime(day int) time.Time {
	return time.Unix(int64(day)*secondsPerDay, 0).UTC()
}

// BarTime returns the timestamp of a minute bar: session open plus the
// minute offset on the bar's trading day.
func BarTime(day, minute int) time.Time {
	return DayTime(day).Add(time.Duration(sessionOpenSecond+minute*60) * time.Second)
}

// IsTradingDay reports whether a day index falls on a weekday. Day 0
// (1970-01-01) was a Thursday.
func IsTradingDay(day int) bool {
	dow := ((day+4)%7 + 7) % 7
	return dow != int(time.Sunday) && dow != int(time.Saturday)
}

// TradingDays enumerates count trading days strictly before the given day,
// skipping weekends, returned oldest-first.
func TradingDays(count, before int) []int {
	if count <= 0 {
		return nil
	}

	days := make([]int, 0, count)
	for d := before - 1; len(days) < count; d-- {
		if IsTradingDay(d) {
			days = append(days, d)
		}
	}

	// Collected newest-first; reverse into chronological order.
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}
	return days
}

// MarketClock maps wall-clock time onto a fixed simulated trading day. The
// simulated date is hardcoded by configuration and always treated as a
// trading day; only the local time of day moves the session forward.
type MarketClock struct {
	clock Clock
	day   int
	loc   *time.Location
}

// NewMarketClock builds a MarketClock from session configuration.
func NewMarketClock(cfg *config.SessionConfig, clock Clock) (*MarketClock, error) {
	date, err := time.Parse("2006-01-02", cfg.SimulatedDate)
	if err != nil {
		return nil, fmt.Errorf("invalid simulated date %q: %w", cfg.SimulatedDate, err)
	}

	loc := time.Local
	if cfg.Timezone != "" && cfg.Timezone != "Local" {
		loc, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
		}
	}

	if clock == nil {
		clock = SystemClock()
	}

	return &MarketClock{
		clock: clock,
		day:   DayFromTime(date),
		loc:   loc,
	}, nil
}

// Day returns the simulated trading-day index.
func (mc *MarketClock) Day() int { return mc.day }

// Now returns the underlying wall-clock time.
func (mc *MarketClock) Now() time.Time { return mc.clock.Now() }

// State derives the current market state. Seconds since open are clamped to
// 0 before the open and to the full session length after the close.
func (mc *MarketClock) State() models.MarketState {
	now := mc.clock.Now().In(mc.loc)
	secOfDay := now.Hour()*3600 + now.Minute()*60 + now.Second()

	sec := secOfDay - sessionOpenSecond
	open := true
	if sec < 0 {
		sec, open = 0, false
	}
	if sec > SessionSeconds {
		sec, open = SessionSeconds, false
	}

	return models.MarketState{
		TradingDay:       mc.day,
		SecondsSinceOpen: sec,
		IsOpen:           open,
	}
}
