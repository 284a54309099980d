package seeder

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/pickup/internal/domain/types"
	"github.com/okian/pickup/pkg/logger"
)

// Run seeds the service, verifies the reported board and fetches a lineup.
func Run(ctx context.Context, config Config) (*Stats, error) {
	cfg := config.withDefaults()
	log := cfg.Logger
	stats := &Stats{Seed: cfg.Seed, StartTime: time.Now()}

	log.Info(ctx, "starting pickup seeder",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("players", cfg.Players),
		logger.Int("users", cfg.Users),
		logger.Int("workers", cfg.Workers),
		logger.Int64("seed", cfg.Seed),
		logger.String("timeout", cfg.Timeout.String()))

	client := NewHTTPClient(cfg.BaseURL, cfg.Timeout)

	// Step 1: Check service health
	if err := client.GetJSON(ctx, "/healthz", nil); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}

	// Step 2: Generate submissions
	subs := Generate(cfg.Players, cfg.Users, cfg.Seed)
	stats.Generated = len(subs)
	expected, err := Expected(subs)
	if err != nil {
		return stats, fmt.Errorf("generated invalid submission: %w", err)
	}

	// Step 3: Submit concurrently
	if err := submit(ctx, client, cfg, subs, stats); err != nil {
		return stats, err
	}

	// Step 4: Verify the board
	var board []types.PlayerView
	if err := client.GetJSON(ctx, "/players", &board); err != nil {
		return stats, fmt.Errorf("board retrieval failed: %w", err)
	}
	verified, err := Verify(expected, board)
	stats.PlayersVerified = verified
	if err != nil {
		return stats, err
	}
	log.Info(ctx, "board verified", logger.Int("players", verified))

	// Step 5: Fetch a reproducible lineup
	var lineup types.Lineup
	if err := client.GetJSON(ctx, "/teams?seed="+strconv.FormatInt(cfg.Seed, 10), &lineup); err != nil {
		return stats, fmt.Errorf("lineup retrieval failed: %w", err)
	}
	stats.Imbalance = lineup.Imbalance
	logLineup(ctx, log, lineup)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	log.Info(ctx, "seeding completed",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("failed", stats.Failed),
		logger.Int("playersVerified", stats.PlayersVerified),
		logger.Float64("imbalance", stats.Imbalance),
		logger.String("duration", stats.Duration.String()))
	return stats, nil
}

// submit posts every submission with at most cfg.Workers in flight. Failed
// posts are counted; the run fails after all posts finish.
func submit(ctx context.Context, client *HTTPClient, cfg Config, subs []types.SubmitRequest, stats *Stats) error {
	var submitted, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, sub := range subs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var resp types.SubmitResponse
			if err := client.PostJSON(gctx, "/ratings", sub, &resp); err != nil {
				failed.Add(1)
				cfg.Logger.Warn(gctx, "submission failed",
					logger.String("player", sub.Player),
					logger.String("user", sub.User),
					logger.Error(err))
				return nil
			}
			submitted.Add(1)
			if cfg.Verbose {
				cfg.Logger.Info(gctx, "submitted",
					logger.String("player", resp.Player),
					logger.String("user", resp.User))
			}
			return nil
		})
	}
	err := g.Wait()

	stats.Submitted = int(submitted.Load())
	stats.Failed = int(failed.Load())
	if err != nil {
		return fmt.Errorf("submission interrupted: %w", err)
	}
	if stats.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrSubmit, stats.Failed, len(subs))
	}
	return nil
}

func logLineup(ctx context.Context, log logger.Logger, lineup types.Lineup) {
	for i, team := range []types.TeamView{lineup.TeamA, lineup.TeamB} {
		players := make([]string, len(team.Players))
		for j, m := range team.Players {
			players[j] = m.Player
		}
		log.Info(ctx, "team",
			logger.String("team", string(rune('A'+i))),
			logger.Float64("total", team.Total),
			logger.Any("players", players))
	}
	log.Info(ctx, "lineup", logger.Float64("imbalance", lineup.Imbalance))
}
