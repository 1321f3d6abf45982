package models

import (
	"time"
)

// Timeframe identifies the shape of a generated series.
type Timeframe string

const (
	// TimeframeIntraday is one bar per completed minute of the current session.
	TimeframeIntraday Timeframe = "intraday"
	// TimeframeHourly5D is hourly bars over the last 4 trading days plus today.
	TimeframeHourly5D Timeframe = "hourly5d"
	// TimeframeDaily1M is daily closing bars over the last 22 trading days plus today.
	TimeframeDaily1M Timeframe = "daily1m"
)

// Valid reports whether the timeframe is one of the supported values.
func (tf Timeframe) Valid() bool {
	switch tf {
	case TimeframeIntraday, TimeframeHourly5D, TimeframeDaily1M:
		return true
	}
	return false
}

// Bar represents OHLCV candlestick data for a fixed time bucket.
type Bar struct {
	Symbol    string    `json:"symbol"`
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// Series is an ordered, chronological sequence of bars for one symbol.
type Series struct {
	Symbol    string    `json:"symbol"`
	Timeframe Timeframe `json:"timeframe"`
	Bars      []Bar     `json:"bars"`
}

// PricePoint is a single chart point. Interpolated points are synthetic
// fill-ins between real samples and must be excluded from statistics and
// point lookups.
type PricePoint struct {
	Time         time.Time `json:"time"`
	Price        float64   `json:"price"`
	Interpolated bool      `json:"interpolated,omitempty"`
}

// MarketState describes where the simulated session currently stands.
// SecondsSinceOpen is clamped to [0, 23400] (a 6.5h session).
type MarketState struct {
	TradingDay       int  `json:"trading_day"`
	SecondsSinceOpen int  `json:"seconds_since_open"`
	IsOpen           bool `json:"is_open"`
}
