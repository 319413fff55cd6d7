package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/edutrack/internal/adapters/http/api"
	"github.com/okian/edutrack/internal/adapters/http/swagger"
	"github.com/okian/edutrack/internal/adapters/kvstore"
	app "github.com/okian/edutrack/internal/app"
	"github.com/okian/edutrack/internal/config"
	"github.com/okian/edutrack/pkg/logger"
	"github.com/okian/edutrack/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> .env -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "edutrack exited with error", logger.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// run starts the service and serves HTTP until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config) error {
	if err := configureLogging(ctx, cfg); err != nil {
		return err
	}
	log := logger.Get()
	configureMetrics(cfg)

	svc := newService(cfg, log)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr, err)
	}
	return serve(ctx, srv, ln, svc)
}

// configureLogging re-initializes the logger with the configured format and
// level. An invalid level falls back to info.
func configureLogging(ctx context.Context, cfg *config.Config) error {
	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}

// configureMetrics applies the metrics section of cfg to the global registry.
func configureMetrics(cfg *config.Config) {
	metrics.Configure(
		metrics.WithPrefix(cfg.MetricsNamespace, cfg.MetricsSubsystem),
		metrics.WithConstLabels(cfg.MetricsLabelSet()),
		metrics.WithEnabled(cfg.MetricsEnabled),
		metrics.WithRefreshInterval(time.Duration(cfg.MetricsRefreshMS)*time.Millisecond),
	)
}

// newService maps configuration onto service options.
func newService(cfg *config.Config, log logger.Logger) *app.Service {
	var kvOpts []kvstore.Option
	switch cfg.StoreBackend {
	case config.BackendFile:
		kvOpts = append(kvOpts, kvstore.WithFilePath(cfg.StorePath))
	case config.BackendSQLite:
		kvOpts = append(kvOpts, kvstore.WithSQLitePath(cfg.SQLitePath))
	case config.BackendRedis:
		kvOpts = append(kvOpts, kvstore.WithRedis(cfg.RedisAddr, cfg.RedisDB, cfg.RedisPrefix))
	}
	return app.New(
		app.WithLogger(log),
		app.WithBackend(cfg.StoreBackend, kvOpts...),
		app.WithSampleFallback(cfg.StoreFallback == config.FallbackSample),
		app.WithLoginDelay(time.Duration(cfg.LoginDelayMS)*time.Millisecond),
		app.WithMaxDrafts(cfg.MaxDrafts),
		app.WithFixedTopPerformer(cfg.FixedTopPerformer),
	)
}

// newMux registers the docs and business API routes.
func newMux(ctx context.Context, svc *app.Service) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc).Register(ctx, mux)
	return mux
}

// serve runs the HTTP server and the metrics updaters until ctx is cancelled
// or one of them fails, then shuts the server down gracefully.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, svc *app.Service) error {
	log := logger.Get()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info(gctx, "starting HTTP server", logger.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		startMetricsUpdater(gctx, metrics.RefreshInterval(), svc)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		log.Info(context.Background(), "server stopped")
		return nil
	})

	return g.Wait()
}

// startMetricsUpdater refreshes system and service gauges every interval.
func startMetricsUpdater(ctx context.Context, interval time.Duration, svc *app.Service) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
			// GetStats refreshes the entry and draft gauges.
			_ = svc.GetStats()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
