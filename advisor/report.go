package advisor

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/fxscout/market"
)

// MarketContext summarizes the bar under decision.
type MarketContext struct {
	Price     float64
	Bias      market.Bias
	Session   string
	InSession bool
}

// Levels carries the structural supply/demand levels and pip distances from
// the current price. Zero values mean the analyzer has no validated level.
type Levels struct {
	Supply     float64
	Demand     float64
	SupplyPips float64
	DemandPips float64
}

// Report is the structured outcome of one evaluation cycle. Exactly one of
// Signal and Reason is meaningful: Reason explains the absence of a signal.
type Report struct {
	Instrument string
	Timeframe  string
	Timestamp  time.Time
	Context    MarketContext
	Levels     Levels
	Signal     *Signal
	Reason     string
}

// String renders the analyst-style report block shown by the CLI.
func (r Report) String() string {
	var b strings.Builder
	line := strings.Repeat("=", 60)

	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "   MARKET REPORT (%s): %s\n", r.Timeframe, r.Instrument)
	fmt.Fprintf(&b, "   DATE: %s\n", r.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(&b, line)

	fmt.Fprintln(&b, "\n[1] MARKET CONTEXT")
	fmt.Fprintf(&b, "    Current Price:   %.5f\n", r.Context.Price)
	fmt.Fprintf(&b, "    Dominant Bias:   %s\n", r.Context.Bias)
	fmt.Fprintf(&b, "    Active Session:  %s\n", r.Context.Session)

	fmt.Fprintln(&b, "\n[2] STRUCTURAL LEVELS")
	fmt.Fprintf(&b, "    Validated Supply:  %.5f (%.1f pips away)\n", r.Levels.Supply, r.Levels.SupplyPips)
	fmt.Fprintf(&b, "    Validated Demand:  %.5f (%.1f pips away)\n", r.Levels.Demand, r.Levels.DemandPips)

	fmt.Fprintln(&b, "\n[3] OPPORTUNITY")
	if r.Signal == nil {
		fmt.Fprintln(&b, "    >> NO TRADE WITH A MATHEMATICAL EDGE")
		fmt.Fprintf(&b, "    Reason: %s\n", r.Reason)
		if !r.Context.InSession {
			fmt.Fprintln(&b, "    Note: market is outside institutional trading hours.")
		}
	} else {
		s := r.Signal
		fmt.Fprintln(&b, "    >>> OPPORTUNITY DETECTED <<<")
		fmt.Fprintf(&b, "    Direction:      %s\n", s.Direction)
		fmt.Fprintf(&b, "    Entry:          %.5f\n", s.Entry)
		fmt.Fprintf(&b, "    Stop Loss:      %.5f\n", s.Stop)
		fmt.Fprintf(&b, "    Take Profit:    %.5f\n", s.Target)
		fmt.Fprintf(&b, "    Risk/Reward:    1:%.2f\n", s.RewardRatio)
		fmt.Fprintf(&b, "    Probability:    %d%%\n", s.Probability)
		fmt.Fprintf(&b, "    Justification:  %s\n", s.Reason)
		if s.Duration > 0 {
			fmt.Fprintf(&b, "    Est. Duration:  %d bars\n", s.Duration)
		}
	}

	fmt.Fprintln(&b, "\n"+line)
	return b.String()
}
