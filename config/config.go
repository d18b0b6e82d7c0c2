package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rustyeddy/fundnav/fund"
	"github.com/rustyeddy/fundnav/internal/logger"
	"gopkg.in/yaml.v3"
)

// Ledger types.
const (
	LedgerCSV    = "csv"
	LedgerSQLite = "sqlite"
)

// Config represents the complete fundnav configuration
type Config struct {
	Fund   FundConfig   `json:"fund" yaml:"fund"`
	Ledger LedgerConfig `json:"ledger" yaml:"ledger"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// FundConfig describes the fund whose entries are computed.
type FundConfig struct {
	Name     string `json:"name" yaml:"name"`
	Currency string `json:"currency" yaml:"currency"` // display label only

	// InitialUnits seeds the first entry unless the entry carries its own.
	InitialUnits float64 `json:"initial_units" yaml:"initial_units"`

	// SkipOrderCheck processes entries as given instead of rejecting
	// entries that are not in strictly increasing date order.
	SkipOrderCheck bool `json:"skip_order_check,omitempty" yaml:"skip_order_check,omitempty"`
}

// LedgerConfig selects where weekly entries are stored.
type LedgerConfig struct {
	Type        string `json:"type" yaml:"type"` // "csv" or "sqlite"
	EntriesFile string `json:"entries_file,omitempty" yaml:"entries_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig configures the structured logger.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Pretty bool   `json:"pretty" yaml:"pretty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Fund.Name == "" {
		return fmt.Errorf("fund.name is required")
	}
	if c.Fund.Currency == "" {
		return fmt.Errorf("fund.currency is required")
	}
	if c.Fund.InitialUnits <= 0 {
		return fmt.Errorf("fund.initial_units must be positive")
	}
	if c.Ledger.Type != LedgerCSV && c.Ledger.Type != LedgerSQLite {
		return fmt.Errorf("ledger.type must be 'csv' or 'sqlite'")
	}
	if c.Ledger.Type == LedgerCSV && c.Ledger.EntriesFile == "" {
		return fmt.Errorf("ledger entries_file required for CSV type")
	}
	if c.Ledger.Type == LedgerSQLite && c.Ledger.DBPath == "" {
		return fmt.Errorf("ledger db_path required for SQLite type")
	}
	if lvl := strings.ToLower(strings.TrimSpace(c.Log.Level)); lvl != "" && !slices.Contains(logger.Levels, lvl) {
		return fmt.Errorf("log.level must be one of %s", strings.Join(logger.Levels, ", "))
	}
	return nil
}

// ComputeOptions translates the fund settings into fund.Compute options.
func (c *Config) ComputeOptions() []fund.Option {
	return []fund.Option{
		fund.WithInitialUnits(c.Fund.InitialUnits),
		fund.WithOrderCheck(!c.Fund.SkipOrderCheck),
	}
}

// Logger returns the logger settings.
func (c *Config) Logger() logger.Config {
	return logger.Config{Level: c.Log.Level, Pretty: c.Log.Pretty}
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Fund: FundConfig{
			Name:         "Steady Gains",
			Currency:     "INR",
			InitialUnits: fund.DefaultInitialUnits,
		},
		Ledger: LedgerConfig{
			Type:        LedgerCSV,
			EntriesFile: "./entries.csv",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
