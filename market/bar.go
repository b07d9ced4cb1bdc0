package market

import (
	"math"
	"strings"
	"time"
)

// Bias is the directional market classification computed by the analyzer.
type Bias string

const (
	Bullish Bias = "BULLISH"
	Bearish Bias = "BEARISH"
	Ranging Bias = "RANGING"
)

// Direction of a proposed trade.
type Direction string

const (
	Buy  Direction = "BUY"
	Sell Direction = "SELL"
)

// Bar is one time-indexed OHLC sample, enriched with the analyzer's output.
// Pivot, gap and volatility fields carry NaN when the analyzer has no value
// for them; use the Has* helpers rather than comparing against NaN directly.
type Bar struct {
	Time  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64

	Bias          Bias
	LastPivotHigh float64 // most recent validated supply level
	LastPivotLow  float64 // most recent validated demand level

	FVGBullish bool
	FVGBearish bool
	FVGTop     float64
	FVGBottom  float64

	EMA        float64 // fast moving average
	Momentum   float64 // oscillator, 0..100
	Volatility float64 // per-bar volatility measure

	LondonSession  bool
	NewYorkSession bool
}

// InSession reports whether either major session is active. Both can be true
// during the London/New York overlap.
func (b Bar) InSession() bool {
	return b.LondonSession || b.NewYorkSession
}

// SessionLabel names the active sessions for reporting.
func (b Bar) SessionLabel() string {
	var parts []string
	if b.LondonSession {
		parts = append(parts, "LONDON")
	}
	if b.NewYorkSession {
		parts = append(parts, "NEW YORK")
	}
	if len(parts) == 0 {
		return "ASIA / OFF-HOURS (low liquidity)"
	}
	return strings.Join(parts, " + ")
}

func (b Bar) HasPivotHigh() bool {
	return !math.IsNaN(b.LastPivotHigh) && b.LastPivotHigh > 0
}

func (b Bar) HasPivotLow() bool {
	return !math.IsNaN(b.LastPivotLow) && b.LastPivotLow > 0
}

func (b Bar) HasVolatility() bool {
	return !math.IsNaN(b.Volatility) && b.Volatility > 0
}
