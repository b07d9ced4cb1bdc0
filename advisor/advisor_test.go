package advisor

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxscout/journal"
	"github.com/rustyeddy/fxscout/market"
	"github.com/rustyeddy/fxscout/risk"
)

func newTestAdvisor(t *testing.T) (*Advisor, journal.Journal) {
	t.Helper()

	j := journal.NewJSONFile(filepath.Join(t.TempDir(), "journal.json"))
	a := New("EUR_USD", risk.DefaultProfile(), j, zerolog.Nop())
	return a, j
}

func reversalBar() market.Bar {
	return market.Bar{
		Close:         1.10500,
		Bias:          market.Bullish,
		LastPivotLow:  1.10480,
		LastPivotHigh: math.NaN(),
		Momentum:      50,
		LondonSession: true,
	}
}

func TestEvaluateApprovesAndJournals(t *testing.T) {
	t.Parallel()

	a, j := newTestAdvisor(t)
	r := a.Evaluate("1h", []market.Bar{reversalBar()})

	require.NotNil(t, r.Signal)
	sig := r.Signal

	assert.Equal(t, "EUR_USD", sig.Instrument)
	assert.Equal(t, market.Buy, sig.Direction)
	assert.InDelta(t, 1.10500, sig.Entry, 1e-9)
	assert.InDelta(t, 1.10430, sig.Stop, 1e-9)
	assert.InDelta(t, 1.10675, sig.Target, 1e-9)
	assert.InDelta(t, 2.5, sig.RewardRatio, 1e-6)
	assert.Equal(t, 85, sig.Probability)
	assert.Zero(t, sig.Duration)
	assert.NotEmpty(t, sig.ID)

	// Approved signals always satisfy the gate thresholds.
	assert.GreaterOrEqual(t, sig.RewardRatio, 2.0)
	assert.GreaterOrEqual(t, sig.Probability, 70)

	entries := j.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, sig.ID, entries[0].ID)
	assert.InDelta(t, sig.Entry, entries[0].EntryPrice, 1e-9)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestEvaluateRangeScalpAtRatioBoundary(t *testing.T) {
	t.Parallel()

	a, j := newTestAdvisor(t)
	bar := market.Bar{
		Close:         1.20000,
		Bias:          market.Ranging,
		LastPivotHigh: 1.20020,
		LastPivotLow:  math.NaN(),
		Momentum:      55,
	}

	r := a.Evaluate("1h", []market.Bar{bar})

	// RR of exactly 2.0 must pass, not fail.
	require.NotNil(t, r.Signal)
	assert.Equal(t, market.Sell, r.Signal.Direction)
	assert.InDelta(t, 2.0, r.Signal.RewardRatio, 1e-6)
	assert.Equal(t, 70, r.Signal.Probability)
	assert.Len(t, j.Entries(), 1)
}

func TestEvaluateRejectsLowQualitySetup(t *testing.T) {
	t.Parallel()

	a, j := newTestAdvisor(t)

	// Out-of-session pullback: probability 65 fails the gate; the pullback's
	// RR of 2.0 passes, so the reason names probability.
	bar := market.Bar{
		Close:         1.10500,
		Bias:          market.Bullish,
		EMA:           1.10450,
		LastPivotHigh: math.NaN(),
		LastPivotLow:  math.NaN(),
		Momentum:      50,
	}

	r := a.Evaluate("1h", []market.Bar{bar})

	assert.Nil(t, r.Signal)
	assert.Equal(t, "setup rejected: estimated probability below 70% threshold", r.Reason)
	assert.Empty(t, j.Entries(), "rejected setups are not journaled")
}

func TestEvaluateNoSetup(t *testing.T) {
	t.Parallel()

	a, j := newTestAdvisor(t)
	bar := market.Bar{
		Close:         1.10500,
		Bias:          market.Ranging,
		LastPivotHigh: math.NaN(),
		LastPivotLow:  math.NaN(),
		Momentum:      50,
	}

	r := a.Evaluate("1h", []market.Bar{bar})

	assert.Nil(t, r.Signal)
	assert.Equal(t, "no setup met the confluence requirements", r.Reason)
	assert.Equal(t, market.Ranging, r.Context.Bias)
	assert.Empty(t, j.Entries())
}

func TestEvaluateNoData(t *testing.T) {
	t.Parallel()

	a, j := newTestAdvisor(t)
	r := a.Evaluate("1h", nil)

	assert.Nil(t, r.Signal)
	assert.Equal(t, "no market data available", r.Reason)
	assert.Empty(t, j.Entries())
}

func TestEvaluateLevels(t *testing.T) {
	t.Parallel()

	a, _ := newTestAdvisor(t)
	bar := market.Bar{
		Close:         1.10500,
		Bias:          market.Ranging,
		LastPivotHigh: 1.10650,
		LastPivotLow:  1.10100,
		Momentum:      50,
	}

	r := a.Evaluate("1h", []market.Bar{bar})

	assert.InDelta(t, 1.10650, r.Levels.Supply, 1e-9)
	assert.InDelta(t, 15.0, r.Levels.SupplyPips, 1e-6)
	assert.InDelta(t, 1.10100, r.Levels.Demand, 1e-9)
	assert.InDelta(t, 40.0, r.Levels.DemandPips, 1e-6)
}

func TestPositionSizeService(t *testing.T) {
	t.Parallel()

	a, _ := newTestAdvisor(t)
	sig := Signal{Entry: 1.2000, Stop: 1.1900}

	// Default profile: 1% of 100k over 100 pips is one standard lot.
	assert.InDelta(t, 1.0, a.PositionSize(sig), 1e-9)
}

func TestReportStringNoTrade(t *testing.T) {
	t.Parallel()

	a, _ := newTestAdvisor(t)
	bar := market.Bar{
		Close:         1.10500,
		Bias:          market.Ranging,
		LastPivotHigh: math.NaN(),
		LastPivotLow:  math.NaN(),
		Momentum:      50,
	}

	out := a.Evaluate("1h", []market.Bar{bar}).String()
	assert.Contains(t, out, "NO TRADE WITH A MATHEMATICAL EDGE")
	assert.Contains(t, out, "outside institutional trading hours")
}

func TestReportStringSignal(t *testing.T) {
	t.Parallel()

	a, _ := newTestAdvisor(t)
	out := a.Evaluate("1h", []market.Bar{reversalBar()}).String()

	assert.Contains(t, out, "OPPORTUNITY DETECTED")
	assert.Contains(t, out, "BUY")
	assert.Contains(t, out, "1:2.50")
	assert.NotContains(t, out, "Est. Duration", "level retests carry no duration estimate")
}
