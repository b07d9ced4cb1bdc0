// Package feed decodes analyzer-enriched bars from CSV. Retrieval and
// enrichment happen upstream; this is pure decoding for the CLI and replay
// tooling.
package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/fxscout/market"
)

// Column names expected in the header row. Order does not matter; unknown
// columns are ignored.
const (
	colTime       = "time"
	colOpen       = "open"
	colHigh       = "high"
	colLow        = "low"
	colClose      = "close"
	colBias       = "bias"
	colPivotHigh  = "pivot_high"
	colPivotLow   = "pivot_low"
	colFVGBullish = "fvg_bullish"
	colFVGBearish = "fvg_bearish"
	colFVGTop     = "fvg_top"
	colFVGBottom  = "fvg_bottom"
	colEMA        = "ema"
	colMomentum   = "momentum"
	colVolatility = "volatility"
	colLondon     = "london"
	colNewYork    = "new_york"
)

var required = []string{colTime, colOpen, colHigh, colLow, colClose, colBias}

// LoadBars reads enriched bars from the CSV file at path.
func LoadBars(path string) ([]market.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bars file: %w", err)
	}
	defer f.Close()

	bars, err := ReadBars(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bars, nil
}

// ReadBars decodes enriched bars from CSV with a header row. Empty numeric
// fields decode as NaN (level/volatility not available on that bar).
func ReadBars(r io.Reader) ([]market.Bar, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var bars []market.Bar
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		bar, err := decodeBar(cols, rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func decodeBar(cols map[string]int, rec []string) (market.Bar, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	ts, err := time.Parse(time.RFC3339, get(colTime))
	if err != nil {
		return market.Bar{}, fmt.Errorf("time: %w", err)
	}

	bar := market.Bar{Time: ts}
	for _, fld := range []struct {
		name string
		dst  *float64
	}{
		{colOpen, &bar.Open},
		{colHigh, &bar.High},
		{colLow, &bar.Low},
		{colClose, &bar.Close},
	} {
		v, err := strconv.ParseFloat(get(fld.name), 64)
		if err != nil {
			return market.Bar{}, fmt.Errorf("%s: %w", fld.name, err)
		}
		*fld.dst = v
	}

	switch bias := market.Bias(strings.ToUpper(get(colBias))); bias {
	case market.Bullish, market.Bearish, market.Ranging:
		bar.Bias = bias
	default:
		return market.Bar{}, fmt.Errorf("bias: unknown value %q", get(colBias))
	}

	bar.LastPivotHigh = optFloat(get(colPivotHigh))
	bar.LastPivotLow = optFloat(get(colPivotLow))
	bar.FVGTop = optFloat(get(colFVGTop))
	bar.FVGBottom = optFloat(get(colFVGBottom))
	bar.Volatility = optFloat(get(colVolatility))

	// EMA and momentum default to zero (unset) rather than NaN; the detector
	// treats a zero EMA as absent.
	if v := optFloat(get(colEMA)); !math.IsNaN(v) {
		bar.EMA = v
	}
	if v := optFloat(get(colMomentum)); !math.IsNaN(v) {
		bar.Momentum = v
	}

	bar.FVGBullish = optBool(get(colFVGBullish))
	bar.FVGBearish = optBool(get(colFVGBearish))
	bar.LondonSession = optBool(get(colLondon))
	bar.NewYorkSession = optBool(get(colNewYork))

	return bar, nil
}

func optFloat(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func optBool(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "t", "yes":
		return true
	}
	return false
}
