// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/okian/pickup/internal/adapters/repository"
	"github.com/okian/pickup/internal/domain/aggregate"
	"github.com/okian/pickup/internal/domain/balance"
	"github.com/okian/pickup/internal/domain/model"
	"github.com/okian/pickup/internal/domain/types"
	"github.com/okian/pickup/pkg/logger"
	"github.com/okian/pickup/pkg/metrics"
)

// StatusSaved is reported for an accepted submission.
const StatusSaved = "saved"

// Rejection and failure reasons used as metric labels.
const (
	reasonValidation          = "validation"
	reasonStoreUnavailable    = "store_unavailable"
	reasonInsufficientPlayers = "insufficient_players"
)

// schemaEnsurer is implemented by stores that manage their own schema.
type schemaEnsurer interface {
	EnsureSchema(ctx context.Context) error
}

// Service implements the API dependencies for the rating system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	balancer *balance.Balancer
	validate *validator.Validate

	// Configuration
	settings    repository.Settings
	balanceSeed int64
	storeName   string

	// State
	started   bool
	startedAt time.Time

	// Counters for GetStats
	submissions atomic.Int64
	rejections  atomic.Int64
	balanceRuns atomic.Int64
	players     atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore uses store instead of opening one from settings on Start.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
			s.storeName = "custom"
		}
	}
}

// WithStoreSettings selects the store opened on Start.
func WithStoreSettings(settings repository.Settings) Option {
	return func(s *Service) {
		s.settings = settings
	}
}

// WithBalanceSeed fixes the default balancer seed. Zero keeps clock seeding.
func WithBalanceSeed(seed int64) Option {
	return func(s *Service) {
		s.balanceSeed = seed
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		validate: newValidator(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Nop()
	}
	if s.balanceSeed != 0 {
		s.balancer = balance.New(balance.WithSeed(s.balanceSeed))
	} else {
		s.balancer = balance.New()
	}
	if s.storeName == "" {
		s.storeName = s.settings.Driver
		if s.storeName == "" {
			s.storeName = repository.DriverMemory
		}
	}

	return s
}

// Start opens the rating store and prepares its schema when it has one.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting rating service...", logger.String("store", s.storeName))

	if s.store == nil {
		store, err := repository.Open(s.settings)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		s.store = store
	}

	if se, ok := s.store.(schemaEnsurer); ok {
		if err := se.EnsureSchema(ctx); err != nil {
			s.logger.Error(ctx, "failed to prepare store schema", logger.Error(err))
			return fmt.Errorf("prepare store: %w", err)
		}
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "rating service started",
		logger.String("store", s.storeName),
		logger.Int64("balanceSeed", s.balanceSeed),
	)

	return nil
}

// Stop closes the rating store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping rating service...")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "failed to close store", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "rating service stopped")
}

func (s *Service) currentStore() (repository.Store, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started || s.store == nil {
		return nil, ErrNotStarted
	}
	return s.store, nil
}

// Submit validates a multi-position submission and upserts one rating cell
// per position. Cells written before a store failure stay written.
func (s *Service) Submit(ctx context.Context, req types.SubmitRequest) (types.SubmitResponse, error) {
	req.User = strings.TrimSpace(req.User)
	req.Player = strings.TrimSpace(req.Player)

	subs, err := s.expand(req)
	if err != nil {
		s.rejections.Add(1)
		metrics.RecordRatingRejected(reasonValidation)
		s.logger.Debug(ctx, "rejected submission", logger.String("player", req.Player), logger.Error(err))
		return types.SubmitResponse{}, err
	}

	resp := types.SubmitResponse{
		Status:    StatusSaved,
		Player:    req.Player,
		User:      req.User,
		Positions: make([]string, 0, len(subs)),
	}
	for _, sub := range subs {
		if err := s.Upsert(ctx, sub); err != nil {
			return types.SubmitResponse{}, err
		}
		resp.Positions = append(resp.Positions, string(sub.Position))
	}

	s.logger.Debug(ctx, "saved submission",
		logger.String("player", req.Player),
		logger.String("user", req.User),
		logger.Int("positions", len(subs)),
	)
	return resp, nil
}

// expand validates req and expands it into cells in position order.
func (s *Service) expand(req types.SubmitRequest) ([]model.Submission, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSubmission, describe(err))
	}

	byPos := make(map[model.Position]int, len(req.Ratings))
	for key, val := range req.Ratings {
		pos, err := model.ParsePosition(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
		}
		if _, dup := byPos[pos]; dup {
			return nil, fmt.Errorf("%w: position %s given more than once", ErrInvalidSubmission, pos)
		}
		byPos[pos] = val
	}

	out := make([]model.Submission, 0, len(byPos))
	for _, pos := range model.Positions() {
		val, ok := byPos[pos]
		if !ok {
			continue
		}
		r, err := model.NewRating(val)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
		}
		out = append(out, model.Submission{Player: req.Player, Position: pos, User: req.User, Rating: r})
	}
	return out, nil
}

// Upsert stores a single rating cell, overwriting any previous rating by the
// same user for the same player and position.
func (s *Service) Upsert(ctx context.Context, sub model.Submission) error {
	if err := sub.Validate(); err != nil {
		s.rejections.Add(1)
		metrics.RecordRatingRejected(reasonValidation)
		return fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}
	store, err := s.currentStore()
	if err != nil {
		return err
	}
	if err := store.Upsert(ctx, sub.Player, sub.Position, sub.User, sub.Rating); err != nil {
		s.rejections.Add(1)
		metrics.RecordRatingRejected(reasonStoreUnavailable)
		s.logger.Error(ctx, "failed to store rating",
			logger.String("player", sub.Player),
			logger.String("position", string(sub.Position)),
			logger.Error(err),
		)
		return err
	}
	s.submissions.Add(1)
	metrics.RecordRatingSubmitted(string(sub.Position))
	return nil
}

func (s *Service) board(ctx context.Context) ([]aggregate.PlayerAverage, error) {
	store, err := s.currentStore()
	if err != nil {
		return nil, err
	}
	table, err := store.LoadAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to load ratings", logger.Error(err))
		return nil, err
	}
	board := aggregate.Board(table)
	s.players.Store(int64(len(board)))
	metrics.UpdatePlayersTotal(len(board))
	return board, nil
}

// Players returns the ratings board ordered by player name.
func (s *Service) Players(ctx context.Context) ([]types.PlayerView, error) {
	board, err := s.board(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.PlayerView, len(board))
	for i, p := range board {
		out[i] = playerView(p)
	}
	return out, nil
}

// Player returns one player's summary.
func (s *Service) Player(ctx context.Context, name string) (types.PlayerView, error) {
	name = strings.TrimSpace(name)
	store, err := s.currentStore()
	if err != nil {
		return types.PlayerView{}, err
	}
	table, err := store.LoadAll(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to load ratings", logger.Error(err))
		return types.PlayerView{}, err
	}
	record, ok := table[name]
	if !ok {
		return types.PlayerView{}, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
	}
	summary := aggregate.Summarize(name, record)
	if !summary.Rated() {
		return types.PlayerView{}, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
	}
	return playerView(summary), nil
}

// Teams balances every rated player into two teams. A non-nil seed makes the
// split reproducible; otherwise the service balancer is used.
func (s *Service) Teams(ctx context.Context, seed *int64) (types.Lineup, error) {
	board, err := s.board(ctx)
	if err != nil {
		metrics.RecordBalanceFailure(reasonStoreUnavailable)
		return types.Lineup{}, err
	}

	b := s.balancer
	if seed != nil {
		b = balance.New(balance.WithSeed(*seed))
	}

	teamA, teamB, err := b.Balance(aggregate.Entries(board))
	if err != nil {
		if errors.Is(err, balance.ErrInsufficientPlayers) {
			metrics.RecordBalanceFailure(reasonInsufficientPlayers)
			s.logger.Debug(ctx, "not enough players to balance", logger.Int("players", len(board)))
		}
		return types.Lineup{}, err
	}

	diff := balance.Imbalance(teamA, teamB)
	s.balanceRuns.Add(1)
	metrics.RecordBalanceRun()
	metrics.RecordImbalance(diff)

	s.logger.Debug(ctx, "balanced teams",
		logger.Int("players", len(board)),
		logger.Float64("imbalance", diff),
	)

	return types.Lineup{
		TeamA:     teamView(teamA),
		TeamB:     teamView(teamB),
		Imbalance: aggregate.Round2(diff),
		Seed:      seed,
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"store":       s.storeName,
		"submissions": s.submissions.Load(),
		"rejections":  s.rejections.Load(),
		"balanceRuns": s.balanceRuns.Load(),
		"players":     s.players.Load(),
	}
	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}
	return stats
}

func playerView(p aggregate.PlayerAverage) types.PlayerView {
	v := types.PlayerView{
		Player:    p.Player,
		Positions: make(map[string]types.PositionView, len(p.Positions)),
		Overall:   aggregate.Round2(p.Overall),
		Ratings:   p.Ratings,
	}
	for pos, pa := range p.Positions {
		v.Positions[string(pos)] = types.PositionView{
			Average: pa.Average,
			Count:   pa.Count,
			Tooltip: pa.Tooltip,
		}
	}
	return v
}

func teamView(t balance.Team) types.TeamView {
	v := types.TeamView{
		Players: make([]types.TeamMember, len(t.Players)),
		Total:   aggregate.Round2(t.Total),
	}
	for i, e := range t.Players {
		v.Players[i] = types.TeamMember{Player: e.Player, Average: aggregate.Round2(e.Average)}
	}
	return v
}
