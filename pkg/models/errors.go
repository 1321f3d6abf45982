package models

import (
	"errors"
)

// Contract-violation errors surfaced at API boundaries. The pure numeric
// stages are total over their documented domains and never return errors.
var (
	ErrInvalidSymbol    = errors.New("symbol must be non-empty")
	ErrInvalidPrice     = errors.New("base price must be positive")
	ErrInvalidTimeframe = errors.New("unsupported timeframe")
	ErrUnknownSymbol    = errors.New("unknown symbol")
)
