package models

import (
	"time"
)

// Quote represents the current derived snapshot for a symbol. All monetary
// fields are rounded to 2 decimal places at emission; consumers must treat
// them as opaque rendering input.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Open          float64   `json:"open"`
	PreviousClose float64   `json:"previous_close"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	DayLow        float64   `json:"day_low"`
	DayHigh       float64   `json:"day_high"`
	DayRange      string    `json:"day_range"`
	Volume        int64     `json:"volume"`
	Elapsed       string    `json:"elapsed"`
	IsOpen        bool      `json:"is_open"`
	Timestamp     time.Time `json:"timestamp"`
}

// SymbolInfo holds metadata for a simulated instrument.
type SymbolInfo struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Sector    string  `json:"sector"`
	BasePrice float64 `json:"base_price"`
}
