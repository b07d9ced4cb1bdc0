package strategies

import (
	"math"

	"github.com/rustyeddy/fxscout/indicators"
	"github.com/rustyeddy/fxscout/market"
)

// Zone and stop distances in pips, reward multiples per rule.
const (
	reversalZonePips = 30
	reversalStopPips = 5
	reversalReward   = 2.5

	gapStopPips = 3
	gapReward   = 2.5

	pullbackZonePips = 15
	pullbackStopPips = 10
	pullbackReward   = 2.0

	rangeZonePips = 30
	rangeStopPips = 5
	rangeReward   = 2.0

	momentumOverbought = 70
	momentumOversold   = 30

	volWindow   = 20
	minDuration = 1
	maxDuration = 5
)

// Detector runs the setup cascade over one enriched bar. Rules are evaluated
// in a fixed priority order; at most one Setup survives per bar.
type Detector struct {
	pip float64 // pip size in price units
}

// NewDetector returns a detector for the given pip size. A non-positive pip
// falls back to the four-decimal majors convention.
func NewDetector(pip float64) *Detector {
	if pip <= 0 {
		pip = 0.0001
	}
	return &Detector{pip: pip}
}

// Detect evaluates the rules against the latest bar and returns at most one
// candidate, or nil when nothing qualifies. History is only consulted for the
// duration estimate's volatility fallbacks.
func (d *Detector) Detect(bar market.Bar, history []market.Bar) *Setup {
	inSession := bar.InSession()

	// A validated level retest wins outright and is traded as near-immediate,
	// so it carries no duration estimate.
	if s := d.reversalAtLevel(bar, inSession); s != nil {
		return s
	}

	setup := d.imbalanceRebalance(bar, inSession)

	// The pullback rule outranks an imbalance candidate when both fire on the
	// same bar. The overwrite is deliberate; tests pin the precedence.
	if s := d.trendPullback(bar, inSession); s != nil {
		setup = s
	}

	// Extreme momentum against the candidate kills it with no fallback to a
	// lower-priority rule.
	if setup != nil && d.momentumExtreme(bar, setup.Direction) {
		setup = nil
	}

	if setup == nil && bar.Bias == market.Ranging {
		setup = d.rangeScalp(bar)
	}

	if setup != nil {
		setup.Duration = d.estimateDuration(setup, bar, history)
	}
	return setup
}

// reversalAtLevel trades a retest of the most recent opposing supply or demand
// level when price sits within the reaction zone.
func (d *Detector) reversalAtLevel(bar market.Bar, inSession bool) *Setup {
	prob := 75
	if inSession {
		prob = 85
	}

	switch bar.Bias {
	case market.Bullish:
		if !bar.HasPivotLow() {
			return nil
		}
		dist := (bar.Close - bar.LastPivotLow) / d.pip
		if dist <= 0 || dist >= reversalZonePips {
			return nil
		}
		stop := bar.LastPivotLow - reversalStopPips*d.pip
		return &Setup{
			Direction:   market.Buy,
			Entry:       bar.Close,
			Stop:        stop,
			Target:      bar.Close + (bar.Close-stop)*reversalReward,
			Probability: prob,
			Reason:      "reversal: demand zone retest",
		}

	case market.Bearish:
		if !bar.HasPivotHigh() {
			return nil
		}
		dist := (bar.LastPivotHigh - bar.Close) / d.pip
		if dist <= 0 || dist >= reversalZonePips {
			return nil
		}
		stop := bar.LastPivotHigh + reversalStopPips*d.pip
		return &Setup{
			Direction:   market.Sell,
			Entry:       bar.Close,
			Stop:        stop,
			Target:      bar.Close - (stop-bar.Close)*reversalReward,
			Probability: prob,
			Reason:      "reversal: supply zone retest",
		}
	}
	return nil
}

// imbalanceRebalance trades a bar sitting inside a fair-value gap aligned with
// the bias, stopping a few pips past the gap's far edge.
func (d *Detector) imbalanceRebalance(bar market.Bar, inSession bool) *Setup {
	prob := 70
	if inSession {
		prob = 80
	}

	switch {
	case bar.Bias == market.Bullish && bar.FVGBullish:
		stop := bar.FVGBottom - gapStopPips*d.pip
		return &Setup{
			Direction:   market.Buy,
			Entry:       bar.Close,
			Stop:        stop,
			Target:      bar.Close + (bar.Close-stop)*gapReward,
			Probability: prob,
			Reason:      "imbalance: bullish gap rebalance",
		}

	case bar.Bias == market.Bearish && bar.FVGBearish:
		stop := bar.FVGTop + gapStopPips*d.pip
		return &Setup{
			Direction:   market.Sell,
			Entry:       bar.Close,
			Stop:        stop,
			Target:      bar.Close - (stop-bar.Close)*gapReward,
			Probability: prob,
			Reason:      "imbalance: bearish gap rebalance",
		}
	}
	return nil
}

// trendPullback trades a close hugging the fast moving average on the
// trend-confirming side.
func (d *Detector) trendPullback(bar market.Bar, inSession bool) *Setup {
	if bar.EMA == 0 || math.IsNaN(bar.EMA) {
		return nil
	}
	if math.Abs(bar.Close-bar.EMA)/d.pip >= pullbackZonePips {
		return nil
	}

	prob := 65
	if inSession {
		prob = 75
	}

	switch {
	case bar.Bias == market.Bullish && bar.Close > bar.EMA:
		stop := bar.EMA - pullbackStopPips*d.pip
		return &Setup{
			Direction:   market.Buy,
			Entry:       bar.Close,
			Stop:        stop,
			Target:      bar.Close + (bar.Close-stop)*pullbackReward,
			Probability: prob,
			Reason:      "pullback: bounce off fast EMA",
		}

	case bar.Bias == market.Bearish && bar.Close < bar.EMA:
		stop := bar.EMA + pullbackStopPips*d.pip
		return &Setup{
			Direction:   market.Sell,
			Entry:       bar.Close,
			Stop:        stop,
			Target:      bar.Close - (stop-bar.Close)*pullbackReward,
			Probability: prob,
			Reason:      "pullback: rejection at fast EMA",
		}
	}
	return nil
}

// momentumExtreme reports whether the oscillator is stretched against the
// candidate: buying into overbought or selling into oversold.
func (d *Detector) momentumExtreme(bar market.Bar, dir market.Direction) bool {
	switch dir {
	case market.Buy:
		return bar.Momentum >= momentumOverbought
	case market.Sell:
		return bar.Momentum <= momentumOversold
	}
	return false
}

// rangeScalp fades the range extremes in a sideways market: sell near
// resistance with momentum above midline, otherwise buy near support with
// momentum below it.
func (d *Detector) rangeScalp(bar market.Bar) *Setup {
	if bar.HasPivotHigh() && bar.Momentum > 50 {
		dist := (bar.LastPivotHigh - bar.Close) / d.pip
		if dist > 0 && dist < rangeZonePips {
			stop := bar.LastPivotHigh + rangeStopPips*d.pip
			return &Setup{
				Direction:   market.Sell,
				Entry:       bar.Close,
				Stop:        stop,
				Target:      bar.Close - (stop-bar.Close)*rangeReward,
				Probability: 70,
				Reason:      "range: fade at resistance",
			}
		}
	}

	if bar.HasPivotLow() && bar.Momentum < 50 {
		dist := (bar.Close - bar.LastPivotLow) / d.pip
		if dist > 0 && dist < rangeZonePips {
			stop := bar.LastPivotLow - rangeStopPips*d.pip
			return &Setup{
				Direction:   market.Buy,
				Entry:       bar.Close,
				Stop:        stop,
				Target:      bar.Close + (bar.Close-stop)*rangeReward,
				Probability: 70,
				Reason:      "range: bounce at support",
			}
		}
	}
	return nil
}

// estimateDuration projects bars-to-target from the bar's volatility, falling
// back to rolling range, then rolling close change, then a fraction of the
// setup's own risk distance. Result is clamped to [1, 5].
func (d *Detector) estimateDuration(s *Setup, bar market.Bar, history []market.Bar) int {
	vol := bar.Volatility
	if math.IsNaN(vol) || vol <= 0 {
		vol = indicators.AvgRange(history, volWindow)
	}
	if vol <= 0 {
		vol = indicators.AvgAbsCloseChange(history, volWindow)
	}
	if vol <= 0 {
		vol = math.Abs(s.Entry-s.Stop) * 0.4
	}

	bars := math.Abs(s.Target-s.Entry) / math.Max(1e-9, 0.7*vol)
	n := int(math.Round(bars))
	if n < minDuration {
		n = minDuration
	}
	if n > maxDuration {
		n = maxDuration
	}
	return n
}
