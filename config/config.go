// Package config loads the engine configuration from YAML (with a JSON
// fallback) and validates it before anything runs.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/fxscout/market"
	"github.com/rustyeddy/fxscout/risk"
)

// Config is the top-level configuration.
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Risk     RiskConfig     `json:"risk" yaml:"risk"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
}

// AccountConfig holds the capital base used for sizing.
type AccountConfig struct {
	Currency string  `json:"currency" yaml:"currency"`
	Balance  float64 `json:"balance" yaml:"balance"`
}

// RiskConfig holds the per-trade and daily risk parameters.
type RiskConfig struct {
	RiskPercent             float64 `json:"risk_percent" yaml:"risk_percent"`
	MaxDailyDrawdownPercent float64 `json:"max_daily_drawdown_percent" yaml:"max_daily_drawdown_percent"`
}

// JournalConfig selects the journal backend.
type JournalConfig struct {
	Type string `json:"type" yaml:"type"` // "json" or "sqlite"
	Path string `json:"path" yaml:"path"`
}

// AnalysisConfig names the instrument and bar interval under evaluation.
type AnalysisConfig struct {
	Instrument string `json:"instrument" yaml:"instrument"`
	Timeframe  string `json:"timeframe" yaml:"timeframe"`
}

// Profile converts the configured risk parameters into a risk.Profile.
func (c *Config) Profile() risk.Profile {
	return risk.Profile{
		AccountBalance:      c.Account.Balance,
		RiskPerTradePct:     c.Risk.RiskPercent,
		MaxDailyDrawdownPct: c.Risk.MaxDailyDrawdownPercent,
	}
}

// LoadFromFile loads configuration from a file, trying YAML first and falling
// back to JSON.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration, choosing the format by extension.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration before the engine starts.
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.Balance <= 0 {
		return fmt.Errorf("account.balance must be positive")
	}
	if c.Risk.RiskPercent <= 0 || c.Risk.RiskPercent > 100 {
		return fmt.Errorf("risk.risk_percent must be between 0 and 100")
	}
	if c.Risk.MaxDailyDrawdownPercent < 0 || c.Risk.MaxDailyDrawdownPercent > 100 {
		return fmt.Errorf("risk.max_daily_drawdown_percent must be between 0 and 100")
	}
	if c.Analysis.Instrument == "" {
		return fmt.Errorf("analysis.instrument is required")
	}
	if _, ok := market.Instruments[c.Analysis.Instrument]; !ok {
		return fmt.Errorf("unknown instrument: %s", c.Analysis.Instrument)
	}
	if c.Journal.Type != "json" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'json' or 'sqlite'")
	}
	if c.Journal.Path == "" {
		return fmt.Errorf("journal.path is required")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency: "USD",
			Balance:  100000,
		},
		Risk: RiskConfig{
			RiskPercent:             1.0,
			MaxDailyDrawdownPercent: 5.0,
		},
		Journal: JournalConfig{
			Type: "json",
			Path: "./trade_journal.json",
		},
		Analysis: AnalysisConfig{
			Instrument: "EUR_USD",
			Timeframe:  "1h",
		},
	}
}
