// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New(); Load layers a YAML file and env vars on top.
// - Keys are flat snake_case and map 1:1 to PICKUP_* env vars.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"strings"
)

// Store drivers accepted by store_driver.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSheets   = "sheets"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// StoreDriver selects the rating store: memory, postgres or sheets.
	StoreDriver string `koanf:"store_driver" validate:"oneof=memory postgres sheets"`

	// PostgresDSN is the pgx connection string for the postgres driver.
	PostgresDSN string `koanf:"postgres_dsn" validate:"required_if=StoreDriver postgres"`

	// Sheets driver settings.
	SheetsSpreadsheetID   string `koanf:"sheets_spreadsheet_id" validate:"required_if=StoreDriver sheets"`
	SheetsWorksheet       string `koanf:"sheets_worksheet"`
	SheetsCredentialsFile string `koanf:"sheets_credentials_file"`

	// BalanceSeed seeds the team balancer. Zero seeds from the clock.
	BalanceSeed int64 `koanf:"balance_seed"`

	// MaxBodyBytes caps request bodies accepted by POST /ratings.
	MaxBodyBytes int64 `koanf:"max_body_bytes" validate:"gt=0"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		StoreDriver:     DriverMemory,
		SheetsWorksheet: "Ratings",
		MaxBodyBytes:    1 << 20,
	}
}

// normalize lower-cases enumerated values so validation is case-insensitive.
func (c *Config) normalize() {
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
}
