// Package advisor drives one full evaluation cycle: derive market context,
// run the setup detector, gate the candidate through risk validation, and
// journal approved signals.
package advisor

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/fxscout/journal"
	"github.com/rustyeddy/fxscout/market"
	"github.com/rustyeddy/fxscout/pkg/id"
	"github.com/rustyeddy/fxscout/risk"
	"github.com/rustyeddy/fxscout/strategies"
)

// Signal is a setup that passed risk validation: the engine's final decision
// output. Immutable once created.
type Signal struct {
	ID          string
	Instrument  string
	Direction   market.Direction
	Entry       float64
	Stop        float64
	Target      float64
	RewardRatio float64
	Probability int
	Reason      string
	Duration    int // estimated bars to target, 0 for level-retest entries
}

// Advisor evaluates enriched bars for one instrument. It is not safe for
// concurrent use; run one advisor per instrument and share the journal,
// which serializes appends itself.
type Advisor struct {
	instrument market.InstrumentMeta
	detector   *strategies.Detector
	profile    risk.Profile
	journal    journal.Journal
	log        zerolog.Logger
}

// New builds an advisor for the named instrument. Unknown instruments fall
// back to four-decimal pip handling.
func New(instrument string, profile risk.Profile, j journal.Journal, log zerolog.Logger) *Advisor {
	meta, ok := market.Instruments[instrument]
	if !ok {
		meta = market.InstrumentMeta{Name: instrument, PipLocation: -4}
	}

	return &Advisor{
		instrument: meta,
		detector:   strategies.NewDetector(meta.PipSize()),
		profile:    profile,
		journal:    j,
		log:        log.With().Str("instrument", meta.Name).Logger(),
	}
}

// Evaluate runs one cycle over the given history, the last bar being the one
// under decision. Absence of data and absence of a qualifying setup are both
// ordinary outcomes carried on the report, never errors.
func (a *Advisor) Evaluate(timeframe string, history []market.Bar) Report {
	r := Report{
		Instrument: a.instrument.Name,
		Timeframe:  timeframe,
		Timestamp:  time.Now().UTC(),
	}

	if len(history) == 0 {
		r.Reason = "no market data available"
		a.log.Warn().Str("timeframe", timeframe).Msg("evaluation skipped, no data")
		return r
	}

	bar := history[len(history)-1]
	r.Context = MarketContext{
		Price:     bar.Close,
		Bias:      bar.Bias,
		Session:   bar.SessionLabel(),
		InSession: bar.InSession(),
	}
	r.Levels = a.levels(bar)

	setup := a.detector.Detect(bar, history)
	if setup == nil {
		r.Reason = "no setup met the confluence requirements"
		a.log.Info().
			Str("bias", string(bar.Bias)).
			Str("session", r.Context.Session).
			Msg("no qualifying setup")
		return r
	}

	rr := risk.RR(setup.Entry, setup.Stop, setup.Target)
	ok, verdict := a.profile.ValidateTrade(setup.Probability, rr)
	if !ok {
		r.Reason = "setup rejected: " + verdict
		a.log.Info().
			Str("rule", setup.Reason).
			Float64("rr", rr).
			Int("probability", setup.Probability).
			Msg("setup rejected by risk gate")
		return r
	}

	sig := &Signal{
		ID:          id.New(),
		Instrument:  a.instrument.Name,
		Direction:   setup.Direction,
		Entry:       setup.Entry,
		Stop:        setup.Stop,
		Target:      setup.Target,
		RewardRatio: rr,
		Probability: setup.Probability,
		Reason:      setup.Reason,
		Duration:    setup.Duration,
	}
	r.Signal = sig

	if err := a.journal.Append(journal.Entry{
		ID:          sig.ID,
		Instrument:  sig.Instrument,
		Direction:   sig.Direction,
		EntryPrice:  sig.Entry,
		StopPrice:   sig.Stop,
		TargetPrice: sig.Target,
		RewardRatio: sig.RewardRatio,
		Probability: sig.Probability,
		Reason:      sig.Reason,
		Duration:    sig.Duration,
	}); err != nil {
		// The signal already stands; a persistence failure must not undo the
		// decision. The in-memory journal remains authoritative.
		a.log.Error().Err(err).Str("signal", sig.ID).Msg("journal append failed")
	}

	a.log.Info().
		Str("signal", sig.ID).
		Str("direction", string(sig.Direction)).
		Float64("entry", sig.Entry).
		Float64("rr", sig.RewardRatio).
		Int("probability", sig.Probability).
		Msg("signal approved")

	return r
}

// PositionSize sizes the signal against the advisor's risk profile. Sizing is
// offered as a service, not applied automatically on approval.
func (a *Advisor) PositionSize(sig Signal) float64 {
	return a.profile.PositionSize(sig.Entry, sig.Stop)
}

func (a *Advisor) levels(bar market.Bar) Levels {
	var l Levels
	if bar.HasPivotHigh() {
		l.Supply = bar.LastPivotHigh
		l.SupplyPips = a.instrument.Pips(abs(bar.Close - bar.LastPivotHigh))
	}
	if bar.HasPivotLow() {
		l.Demand = bar.LastPivotLow
		l.DemandPips = a.instrument.Pips(abs(bar.Close - bar.LastPivotLow))
	}
	return l
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
