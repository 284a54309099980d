package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/pickup/internal/seeder"
	"github.com/okian/pickup/pkg/logger"
)

const defaultRunTimeout = 5 * time.Minute

func main() {
	var (
		baseURL = flag.String("url", seeder.DefaultBaseURL, "Base URL of the service")
		players = flag.Int("players", seeder.DefaultPlayers, "Number of players to rate")
		users   = flag.Int("users", seeder.DefaultUsers, "Number of raters; each rates every player")
		seed    = flag.Int64("seed", 0, "Seed for generated ratings and the lineup (0 picks one)")
		workers = flag.Int("workers", seeder.DefaultWorkers, "Maximum concurrent submissions")
		timeout = flag.Duration("timeout", seeder.DefaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Log every submission")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seeder.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	_, err := seeder.Run(ctx, seeder.Config{
		BaseURL: *baseURL,
		Players: *players,
		Users:   *users,
		Seed:    *seed,
		Workers: *workers,
		Timeout: *timeout,
		Verbose: *verbose,
		Logger:  logger.Named("seed"),
	})
	if err != nil {
		logger.Get().Error(ctx, "seeding failed", logger.Error(err))
		cancel()
		os.Exit(1)
	}
}
