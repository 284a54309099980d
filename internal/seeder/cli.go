package seeder

import "os"

// ShowHelp prints usage information for the seeder.
func ShowHelp() {
	_, _ = os.Stdout.WriteString(`Pickup Rating Seeder
====================

Submits generated ratings to a running pickup server, checks the averages it
reports and prints a balanced lineup.

Usage:
  go run ./cmd/seed [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -players int
        Number of players to rate (default 10)
  -users int
        Number of raters; each rates every player (default 5)
  -seed int
        Seed for generated ratings and the lineup (default: random)
  -workers int
        Maximum concurrent submissions (default 8)
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Log every submission
  -help
        Show this help message

Examples:
  # Seed with defaults
  go run ./cmd/seed

  # Reproducible run against another host
  go run ./cmd/seed -seed 42 -players 22 -users 8 -url http://localhost:8080
`)
}
