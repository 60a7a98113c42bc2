package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/utafrali/EcommerceGo/storefront/internal/config"
	"github.com/utafrali/EcommerceGo/storefront/internal/storage"
	"github.com/utafrali/EcommerceGo/storefront/internal/storage/memory"
	"github.com/utafrali/EcommerceGo/storefront/internal/storage/postgres"
	redisstore "github.com/utafrali/EcommerceGo/storefront/internal/storage/redis"
	"github.com/utafrali/EcommerceGo/storefront/internal/storage/sqlite"
	"github.com/utafrali/EcommerceGo/storefront/pkg/database"
)

// Store is an opened storage backend together with its cleanup.
type Store struct {
	storage.Store
	Backend string
	close   func() error
}

// Close releases the backend's connections. It is safe to call on a memory
// store.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Ping checks the backend, if it supports health checks.
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.Store.(storage.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// OpenStore connects the backend selected by cfg.StorageBackend.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return &Store{Store: memory.New(), Backend: cfg.StorageBackend}, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("opened sqlite store", slog.String("path", cfg.SQLitePath))
		return &Store{Store: db, Backend: cfg.StorageBackend, close: db.Close}, nil

	case config.BackendRedis:
		rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		return &Store{Store: redisstore.New(rdb), Backend: cfg.StorageBackend, close: rdb.Close}, nil

	case config.BackendPostgres:
		pool, err := database.NewPostgresPool(ctx, database.DefaultPostgresConfig(cfg.PostgresDSN), logger)
		if err != nil {
			return nil, err
		}
		store := postgres.New(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, serviceName); err != nil {
			logger.Warn("failed to register pool metrics", slog.String("error", err.Error()))
		}
		logger.Info("connected to PostgreSQL")
		return &Store{Store: store, Backend: cfg.StorageBackend, close: func() error {
			pool.Close()
			return nil
		}}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
