package main

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/okian/pickup/internal/adapters/http/api"
	"github.com/okian/pickup/internal/adapters/http/swagger"
	"github.com/okian/pickup/internal/adapters/repository"
	service "github.com/okian/pickup/internal/app"
	"github.com/okian/pickup/internal/config"
	"github.com/okian/pickup/pkg/logger"
	"github.com/okian/pickup/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Initialize logging with defaults; the configured format is applied below.
	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Get().Error(ctx, "pickup server failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Optional .env; a missing file is not an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Get().Warn(ctx, "failed to load .env", logger.Error(err))
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if cfg.LogFormat != logger.FormatText {
		if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
			return err
		}
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := service.New(serviceOptions(cfg, log)...)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	srv := newHTTPServer(cfg.Addr, buildHandler(ctx, cfg, svc, log))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info(gctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		startSystemMetricsUpdater(gctx)
		return nil
	})
	g.Go(func() error {
		// Wait for shutdown signal or a server failure.
		<-gctx.Done()
		log.Info(ctx, "shutting down server...")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info(ctx, "server stopped")
	return nil
}

// serviceOptions maps configuration onto service options.
func serviceOptions(cfg *config.Config, log logger.Logger) []service.Option {
	return []service.Option{
		service.WithLogger(log.Named("service")),
		service.WithBalanceSeed(cfg.BalanceSeed),
		service.WithStoreSettings(repository.Settings{
			Driver:          cfg.StoreDriver,
			PostgresDSN:     cfg.PostgresDSN,
			SpreadsheetID:   cfg.SheetsSpreadsheetID,
			Worksheet:       cfg.SheetsWorksheet,
			CredentialsFile: cfg.SheetsCredentialsFile,
		}),
	}
}

// buildHandler registers the API and docs routes behind the request ID middleware.
func buildHandler(ctx context.Context, cfg *config.Config, svc *service.Service, log logger.Logger) http.Handler {
	mux := http.NewServeMux()

	// Register API docs under /api-docs and /openapi.yaml
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc,
		api.WithMaxBodyBytes(cfg.MaxBodyBytes),
		api.WithLogger(log.Named("api")),
	)
	apiServer.Register(ctx, mux)
	return apiServer.Handler(mux)
}

func newHTTPServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// startSystemMetricsUpdater updates system metrics until ctx is done.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		// Average GC pause time
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
