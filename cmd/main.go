package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/cabfare/internal/config"
	"github.com/UnknownOlympus/cabfare/internal/geocoding"
	"github.com/UnknownOlympus/cabfare/internal/geofence"
	"github.com/UnknownOlympus/cabfare/internal/metrics"
	"github.com/UnknownOlympus/cabfare/internal/ratelimit"
	"github.com/UnknownOlympus/cabfare/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main reads quote requests from stdin and writes priced quotes to stdout.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	// Logs go to stderr, stdout carries the quote results.
	logger := setupLogger(cfg.Env)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	provider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Geocoder.ProviderType),
		BaseURL:   cfg.Geocoder.BaseURL,
		APIKey:    cfg.Geocoder.APIKey,
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   cfg.Geocoder.Timeout,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}

	// One limiter for the whole process: geofence checks and address lookups
	// draw from the same budget.
	limiter := ratelimit.New(cfg.Geocoder.RateInterval, logger,
		ratelimit.WithWaitObserver(func(wait time.Duration) {
			appMetrics.LimiterWaitSeconds.Observe(wait.Seconds())
		}),
	)
	geocoder := geocoding.NewRateLimited(
		geocoding.NewInstrumented(provider, appMetrics, cfg.Geocoder.ProviderType),
		limiter,
		logger,
	)

	validator := geofence.NewValidator(geocoder, geofence.Region{
		District: cfg.Pickup.District,
		State:    cfg.Pickup.State,
	}, logger)

	quotes := service.NewQuoteService(logger, validator, geocoder, appMetrics, cfg.Workers)

	logger.InfoContext(ctx, "Cab fare service started",
		"provider", cfg.Geocoder.ProviderType,
		"rate_interval", limiter.Interval(),
		"pickup_district", cfg.Pickup.District,
		"pickup_state", cfg.Pickup.State,
	)

	go startMonitoringServer(ctx, logger, reg, cfg.Port)

	if err = quotes.Run(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		logger.ErrorContext(ctx, "Quote run failed", "error", err)
		stop()
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Cab fare service stopped.")
}

// startMonitoringServer serves /healthz and /metrics on the given port
// until ctx is cancelled.
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	port int,
) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
		if _, err := writer.Write([]byte("OK")); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(readTimeout)*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelWarn,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelError,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
