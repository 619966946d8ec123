package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/chart"
	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/profile"
	"github.com/cocreateceo/Vedic-Astro-sub002/internal/infra/chartcache"
	"github.com/cocreateceo/Vedic-Astro-sub002/internal/infra/config"
	"github.com/cocreateceo/Vedic-Astro-sub002/internal/infra/exportstore"
	"github.com/cocreateceo/Vedic-Astro-sub002/internal/infra/profilerepo"
)

func provideChartConfig(cfg *config.Config) chart.Config {
	return chart.Config{
		CacheTTL:     cfg.Cache.TTL,
		MaxBatch:     cfg.Chart.MaxBatch,
		BatchWorkers: cfg.Chart.BatchWorkers,
	}
}

func provideChartCache(cfg *config.Config, logger *slog.Logger) (chart.Cache, func()) {
	noop := func() {}
	if !cfg.Cache.Enabled {
		logger.Info("chart cache backend not enabled, using memory store")
		return chartcache.NewMemoryStore(), noop
	}
	opt, err := buildValkeyOptions(cfg.Cache.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return chartcache.NewMemoryStore(), noop
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return chartcache.NewMemoryStore(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return chartcache.NewMemoryStore(), noop
	}
	logger.Info("chart valkey cache enabled", "addr", cfg.Cache.Addr)
	return chartcache.NewValkeyStore(client, cfg.Cache.Prefix), client.Close
}

func provideProfileRepository(cfg *config.Config, logger *slog.Logger) (profile.Repository, func()) {
	noop := func() {}
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory profile repository")
		return profilerepo.NewMemoryRepository(), noop
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory profile repository", "error", err)
		return profilerepo.NewMemoryRepository(), noop
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory profile repository", "error", err)
		return profilerepo.NewMemoryRepository(), noop
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory profile repository", "error", err)
		pool.Close()
		return profilerepo.NewMemoryRepository(), noop
	}
	repo := profilerepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("profiles schema setup failed, using memory profile repository", "error", err)
		pool.Close()
		return profilerepo.NewMemoryRepository(), noop
	}
	logger.Info("postgres profile repository enabled")
	return repo, pool.Close
}

func provideExportStorage(cfg *config.Config, logger *slog.Logger) (profile.ObjectStorage, error) {
	if !cfg.Export.Enabled() {
		logger.Info("export storage not configured, using memory storage")
		return exportstore.NewMemoryStorage(), nil
	}
	storage, err := exportstore.NewR2Storage(
		cfg.Export.Endpoint,
		cfg.Export.AccessKey,
		cfg.Export.SecretKey,
		cfg.Export.Bucket,
		cfg.Export.Region,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("export storage: %w", err)
	}
	logger.Info("r2 export storage enabled", "bucket", cfg.Export.Bucket)
	return storage, nil
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
