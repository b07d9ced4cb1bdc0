// Package indicators holds the rolling volatility measures the duration
// estimator falls back on when a bar arrives without an analyzer-computed
// volatility value.
package indicators

import (
	"math"

	"github.com/rustyeddy/fxscout/market"
)

// AvgRange returns the mean high-low range over the last n bars. It degrades
// gracefully when fewer than n bars are available and returns 0 for an empty
// window.
func AvgRange(bars []market.Bar, n int) float64 {
	bars = tail(bars, n)
	if len(bars) == 0 {
		return 0
	}

	sum := 0.0
	for _, b := range bars {
		sum += b.High - b.Low
	}
	return sum / float64(len(bars))
}

// AvgAbsCloseChange returns the mean absolute close-to-close change over the
// last n bars. Needs at least two bars, otherwise 0.
func AvgAbsCloseChange(bars []market.Bar, n int) float64 {
	bars = tail(bars, n)
	if len(bars) < 2 {
		return 0
	}

	sum := 0.0
	for i := 1; i < len(bars); i++ {
		sum += math.Abs(bars[i].Close - bars[i-1].Close)
	}
	return sum / float64(len(bars)-1)
}

func tail(bars []market.Bar, n int) []market.Bar {
	if n > 0 && len(bars) > n {
		return bars[len(bars)-n:]
	}
	return bars
}
