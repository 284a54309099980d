// Package seeder drives a running rating server with generated submissions
// and checks that the averages it reports match a local computation.
package seeder

import (
	"time"

	"github.com/okian/pickup/pkg/logger"
)

// Defaults applied by Config.withDefaults.
const (
	DefaultBaseURL = "http://localhost:9080"
	DefaultPlayers = 10
	DefaultUsers   = 5
	DefaultWorkers = 8
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL string        // Base URL of the service
	Players int           // Number of players to rate
	Users   int           // Number of distinct raters
	Seed    int64         // Seed for generated ratings and the lineup; 0 picks one
	Workers int           // Maximum concurrent submissions
	Timeout time.Duration // HTTP request timeout
	Verbose bool          // Log every submission
	Logger  logger.Logger // Defaults to a no-op logger
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Players <= 0 {
		c.Players = DefaultPlayers
	}
	if c.Users <= 0 {
		c.Users = DefaultUsers
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.Logger == nil {
		c.Logger = logger.Nop()
	}
	return c
}

// Stats holds run statistics.
type Stats struct {
	Seed            int64
	Generated       int
	Submitted       int
	Failed          int
	PlayersVerified int
	Imbalance       float64
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
