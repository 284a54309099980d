// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/okian/pickup/pkg/logger"
	"github.com/okian/pickup/pkg/metrics"
)

// defaultMaxBodyBytes caps POST bodies when no limit is configured.
const defaultMaxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RatingsDependencies
	PlayersDependencies
	TeamsDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	ratingsHandler *RatingsHandler
	playersHandler *PlayersHandler
	teamsHandler   *TeamsHandler
	metricsHandler http.Handler
	logger         logger.Logger
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	maxBodyBytes int64
	gatherer     prometheus.Gatherer
	logger       logger.Logger
}

// WithMaxBodyBytes caps the size of POST /ratings bodies.
func WithMaxBodyBytes(n int64) ServerOption {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// WithGatherer serves /metrics from g instead of the global registry.
func WithGatherer(g prometheus.Gatherer) ServerOption {
	return func(c *serverConfig) {
		if g != nil {
			c.gatherer = g
		}
	}
}

// WithLogger sets the logger used for request and error logging.
func WithLogger(l logger.Logger) ServerOption {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	cfg := serverConfig{
		maxBodyBytes: defaultMaxBodyBytes,
		gatherer:     metrics.GetRegistry(),
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		ratingsHandler: NewRatingsHandler(deps, cfg.maxBodyBytes, cfg.logger),
		playersHandler: NewPlayersHandler(deps, cfg.logger),
		teamsHandler:   NewTeamsHandler(deps, cfg.logger),
		metricsHandler: NewMetricsHandler(cfg.gatherer),
		logger:         cfg.logger,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /metrics", MetricsMiddleware(s.metricsHandler.ServeHTTP, "metrics"))
	mux.HandleFunc("POST /ratings", MetricsMiddleware(s.ratingsHandler.HandlePostRatings, "ratings"))
	mux.HandleFunc("GET /players", MetricsMiddleware(s.playersHandler.HandleListPlayers, "players"))
	mux.HandleFunc("GET /players/{name}", MetricsMiddleware(s.playersHandler.HandleGetPlayer, "player"))
	mux.HandleFunc("GET /teams", MetricsMiddleware(s.teamsHandler.HandleGetTeams, "teams"))
}

// Handler wraps mux with the request ID middleware.
func (s *Server) Handler(mux *http.ServeMux) http.Handler {
	return RequestIDMiddleware(mux, s.logger)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
