package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/teetrip/teetrip/internal/adapters/cache"
	"github.com/teetrip/teetrip/internal/adapters/geocode"
	"github.com/teetrip/teetrip/internal/adapters/http/api"
	"github.com/teetrip/teetrip/internal/adapters/http/swagger"
	"github.com/teetrip/teetrip/internal/adapters/places"
	"github.com/teetrip/teetrip/internal/app"
	"github.com/teetrip/teetrip/internal/config"
	"github.com/teetrip/teetrip/pkg/logger"
	"github.com/teetrip/teetrip/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// A local .env file is optional; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	httpClient := &http.Client{Timeout: time.Duration(cfg.HTTPClientTimeoutSeconds) * time.Second}

	// The places memo cache is separate from the simulation cache inside
	// the service; both share the configured bounds.
	opts := []app.Option{
		app.WithLogger(log),
		app.WithBatchConcurrency(cfg.BatchConcurrency),
		app.WithMaxPlayers(cfg.MaxPlayers),
		app.WithCacheTTL(time.Duration(cfg.CacheTTLSeconds) * time.Second),
		app.WithCacheMaxEntries(cfg.CacheMaxEntries),
		app.WithGeocoder(geocode.NewClient(
			geocode.WithHTTPClient(httpClient),
			geocode.WithBaseURL(cfg.GeocodeBaseURL),
		)),
	}
	if cfg.PlacesAPIKey != "" {
		opts = append(opts, app.WithPlaces(places.NewClient(
			cfg.PlacesAPIKey,
			places.WithHTTPClient(httpClient),
			places.WithBaseURL(cfg.PlacesBaseURL),
			places.WithCache(cache.New(
				cache.WithMaxEntries(cfg.CacheMaxEntries),
				cache.WithDefaultTTL(time.Duration(cfg.CacheTTLSeconds)*time.Second),
			)),
		)))
	} else {
		log.Info(ctx, "no places API key; /courses disabled")
	}

	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

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
}
