package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Default().Validate())
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
account:
  currency: USD
  balance: 50000
risk:
  risk_percent: 0.5
  max_daily_drawdown_percent: 3
journal:
  type: sqlite
  path: ./signals.db
analysis:
  instrument: GBP_USD
  timeframe: 15m
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.InDelta(t, 50000.0, cfg.Account.Balance, 1e-9)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, "GBP_USD", cfg.Analysis.Instrument)

	p := cfg.Profile()
	assert.InDelta(t, 0.5, p.RiskPerTradePct, 1e-9)
	assert.InDelta(t, 3.0, p.MaxDailyDrawdownPct, 1e-9)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	want := Default()
	want.Account.Balance = 25000
	require.NoError(t, want.SaveToFile(path))

	got, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no currency", func(c *Config) { c.Account.Currency = "" }},
		{"zero balance", func(c *Config) { c.Account.Balance = 0 }},
		{"zero risk", func(c *Config) { c.Risk.RiskPercent = 0 }},
		{"risk over 100", func(c *Config) { c.Risk.RiskPercent = 150 }},
		{"unknown instrument", func(c *Config) { c.Analysis.Instrument = "BTC_USD" }},
		{"bad journal type", func(c *Config) { c.Journal.Type = "csv" }},
		{"no journal path", func(c *Config) { c.Journal.Path = "" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
