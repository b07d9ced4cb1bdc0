package market

import "math"

// InstrumentMeta describes a tradeable currency pair.
type InstrumentMeta struct {
	Name          string
	BaseCurrency  string
	QuoteCurrency string
	PipLocation   int // pip = 10^PipLocation in price units
}

// PipSize returns the pip size in price units, e.g. 0.0001 for EUR_USD.
func (m InstrumentMeta) PipSize() float64 {
	return math.Pow(10, float64(m.PipLocation))
}

// Pips converts a price distance to pips for this instrument.
func (m InstrumentMeta) Pips(dist float64) float64 {
	return dist / m.PipSize()
}

var Instruments = map[string]InstrumentMeta{
	"EUR_USD": {
		Name:          "EUR_USD",
		BaseCurrency:  "EUR",
		QuoteCurrency: "USD",
		PipLocation:   -4,
	},
	"GBP_USD": {
		Name:          "GBP_USD",
		BaseCurrency:  "GBP",
		QuoteCurrency: "USD",
		PipLocation:   -4,
	},
	"AUD_USD": {
		Name:          "AUD_USD",
		BaseCurrency:  "AUD",
		QuoteCurrency: "USD",
		PipLocation:   -4,
	},
}
