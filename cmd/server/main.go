package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"

	"mrzgate/internal/evidence/mrz/handler"
	"mrzgate/internal/evidence/mrz/metrics"
	"mrzgate/internal/evidence/mrz/service"
	"mrzgate/internal/evidence/mrz/store"
	"mrzgate/internal/platform/config"
	"mrzgate/internal/platform/httpserver"
	"mrzgate/internal/platform/logger"
	platformmetrics "mrzgate/internal/platform/metrics"
	"mrzgate/internal/platform/redis"
	httptransport "mrzgate/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	m := metrics.New(prometheus.DefaultRegisterer)

	st, health, closeStore, err := openStore(ctx, cfg, m)
	if err != nil {
		return err
	}
	defer closeStore()

	svc, err := service.New(st, log,
		service.WithMetrics(m),
		service.WithConcurrency(cfg.BatchConcurrency),
	)
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:   log,
		Gatherer: prometheus.DefaultGatherer,
		Metrics:  platformmetrics.New(prometheus.DefaultRegisterer),
		Health:   health,
		Modules:  []httptransport.Registrar{handler.New(svc, log)},
	})
	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting mrz gateway", "addr", cfg.Addr, "store", cfg.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("server stopped gracefully")
	return nil
}

func openStore(ctx context.Context, cfg config.Server, m *metrics.Metrics) (store.Store, map[string]httptransport.HealthCheck, func(), error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		pg := store.NewPostgresStore(db, m)
		if err := pg.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		health := map[string]httptransport.HealthCheck{"postgres": db.PingContext}
		return pg, health, func() { _ = db.Close() }, nil

	case config.StoreRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, nil, err
		}
		rs := store.NewRedisStore(client.Client, cfg.ResultTTL, store.WithRedisMetrics(m))
		health := map[string]httptransport.HealthCheck{"redis": client.Health}
		return rs, health, func() { _ = client.Close() }, nil
	}
	return store.NewInMemoryStore(), nil, func() {}, nil
}
