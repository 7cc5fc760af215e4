package main

import (
	"context"
	"energy-es/internal/app"
	"energy-es/internal/docs"
	"energy-es/internal/infrastructure/config"
	"energy-es/internal/infrastructure/logging"
	"energy-es/internal/infrastructure/metrics"
	"energy-es/internal/infrastructure/ratelimit"
	"energy-es/internal/infrastructure/scheduler"
	"energy-es/internal/infrastructure/web/middleware"
	"energy-es/internal/infrastructure/web/server"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	flag "github.com/spf13/pflag"
)

var version = "1.0.0"

// @title energy-es API
// @version 1.0
// @description Today's hourly Spain electricity prices (spot market and PVPC) from Red Eléctrica, cached per day.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	configPath := flag.StringP("config", "c", "", "path to a config file (default: search config.yaml)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "energy-es: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := app.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := app.InitLogging(cfg.Logging, version, os.Stdout); err != nil {
		return err
	}

	ctx := logging.WithRequestID(context.Background(), "startup")
	logging.Info(ctx, "Starting energy-es service", logging.Fields{
		"version":       version,
		"environment":   config.GetEnvironment(),
		"store_backend": cfg.Store.Backend,
		"mock_mode":     cfg.Development.MockMode,
	})

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logging.ErrorWithError(ctx, "Failed to close settings store", err, nil)
		}
	}()

	metrics.SetApplicationInfo(version, cfg.Store.Backend)
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.Server.Port)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var warmUp *scheduler.WarmUpScheduler
	if cfg.Scheduler.Enabled {
		warmUp = scheduler.NewWarmUpScheduler(rootCtx, a.Prices, cfg.Scheduler, a.Location)
		if err := warmUp.Start(); err != nil {
			return err
		}
	}

	limiter := ratelimit.NewRateLimitMiddleware(cfg.RateLimit, middleware.ClientIP)
	srv := server.NewServer(server.NewRouter(a.Prices, a.Location, limiter), cfg.Server)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case err := <-serverErr:
		if warmUp != nil {
			warmUp.Stop()
		}
		return err
	case <-rootCtx.Done():
	}

	logging.Info(ctx, "Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if warmUp != nil {
		warmUp.Stop()
	}

	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logging.Info(ctx, "Server shutdown completed", nil)
	return nil
}
