// cmd/activities-api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"mergington-activities/internal/activities"
	"mergington-activities/internal/api"
	"mergington-activities/internal/common/config"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog, _ := logger.New("info", "console", "stderr")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		panic(err)
	}
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service":     cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	seed, err := activities.LoadSeed(cfg.Registry.SeedFile)
	if err != nil {
		zapLog.Fatal("seed load failed", zap.Error(err), zap.String("seedFile", cfg.Registry.SeedFile))
	}
	registry := activities.NewRegistry(seed, log)

	obs := observability.Noop()
	if cfg.Metrics.Enabled {
		obs, err = observability.New(cfg.App.Name, nil)
		if err != nil {
			log.Warn("otel metrics disabled", map[string]interface{}{"error": err.Error()})
			obs = observability.Noop()
		}
	}

	server := api.NewServer(cfg, registry, obs, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zapLog.Fatal("server failed", zap.Error(err))
		}
		return
	case <-sigCh:
	}

	log.Info("shutdown signal received", nil)
	ctx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	if err := obs.Shutdown(ctx); err != nil {
		log.Error("metrics shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	log.Info("activities service stopped", nil)
}
