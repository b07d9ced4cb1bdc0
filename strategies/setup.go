package strategies

import "github.com/rustyeddy/fxscout/market"

// Setup is an unvalidated candidate trade produced by the detector. It lives
// for one evaluation cycle: either the risk gate promotes it to a signal or it
// is discarded.
type Setup struct {
	Direction   market.Direction
	Entry       float64
	Stop        float64
	Target      float64
	Probability int    // estimated success probability, percent
	Reason      string // which rule produced the candidate
	Duration    int    // estimated bars to target, 0 when not computed
}
