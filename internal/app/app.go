// Package app wires configured infrastructure into the ports used by the services.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"image-judge/internal/adapter"
	"image-judge/internal/cache"
	"image-judge/internal/config"
	"image-judge/internal/database"
	"image-judge/internal/domain"
	"image-judge/internal/logger"
	"image-judge/internal/pool"
	"image-judge/internal/repository"

	"go.uber.org/zap"
)

const (
	BackendSQL       = repository.ResultStoreName
	BackendFirestore = adapter.FirestoreStoreName

	// persistedClaimTTL outlives any session so a replayed write is still recognized.
	persistedClaimTTL = 7 * 24 * time.Hour
)

// Closer releases resources opened while wiring.
type Closer func()

func chain(closers []Closer) Closer {
	return func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}

// LoadPool reads the configured pool file, or the embedded default pool.
func LoadPool(cfg *config.Config) (domain.ImagePool, error) {
	if cfg.Quiz.PoolFile != "" {
		return pool.Load(cfg.Quiz.PoolFile)
	}
	return pool.Default()
}

// NewSessionRepository returns a Redis backed repository when an address is configured
// and reachable, and an in-process one otherwise. The returned cache is nil without Redis.
func NewSessionRepository(cfg *config.Config) (domain.SessionRepository, domain.Cache, Closer) {
	if cfg.Redis.Address == "" {
		logger.Get().Warn("Redis address is not configured; sessions are kept in memory")
		return repository.NewMemorySessionRepository(cfg.Quiz.SessionTTL), nil, func() {}
	}

	client, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Get().Warn("Redis is unreachable; sessions are kept in memory",
			zap.String("address", cfg.Redis.Address), zap.Error(err))
		return repository.NewMemorySessionRepository(cfg.Quiz.SessionTTL), nil, func() {}
	}
	logger.Get().Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))

	cacheAdapter := adapter.NewRedisCacheAdapter(client)
	closer := func() {
		if err := client.Close(); err != nil {
			logger.Get().Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	return repository.NewCacheSessionRepository(cacheAdapter, cfg.Quiz.SessionTTL), cacheAdapter, closer
}

// OpenResultRepository connects to the relational result store.
func OpenResultRepository(ctx context.Context, cfg *config.Config) (repository.ResultRepository, Closer, error) {
	db, err := database.NewSQLXOracleDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	repo := repository.NewSQLXResultRepository(db, repository.NewTransactionManagerAdapter(db))
	return repo, func() {
		if err := db.Close(); err != nil {
			logger.Get().Warn("Failed to close database", zap.Error(err))
		}
	}, nil
}

// NewResultStore builds the configured result stores. A backend that cannot be
// initialized is logged and skipped; with no usable backend the store is nil and
// persistence is disabled. A non-nil cache guards each record id before it is written.
func NewResultStore(ctx context.Context, cfg *config.Config, c domain.Cache) (domain.ResultStore, Closer) {
	var stores []domain.ResultStore
	var closers []Closer

	for _, backend := range cfg.Persistence.Backends {
		if name := strings.ToLower(strings.TrimSpace(backend)); name != BackendSQL && name != BackendFirestore {
			logger.Get().Warn("Unknown persistence backend; skipping", zap.String("backend", backend))
		}
	}

	if cfg.HasBackend(BackendSQL) {
		repo, closer, err := OpenResultRepository(ctx, cfg)
		if err != nil {
			logger.Get().Warn("SQL result store is unavailable; skipping", zap.Error(err))
		} else {
			stores = append(stores, repo)
			closers = append(closers, closer)
		}
	}
	if cfg.HasBackend(BackendFirestore) {
		store, err := adapter.NewFirestoreResultStore(ctx, cfg.Firestore)
		if err != nil {
			logger.Get().Warn("Firestore result store is unavailable; skipping", zap.Error(err))
		} else {
			stores = append(stores, store)
			closers = append(closers, func() {
				if err := store.Close(); err != nil {
					logger.Get().Warn("Failed to close Firestore client", zap.Error(err))
				}
			})
		}
	}

	if len(stores) == 0 {
		logger.Get().Warn("No result store configured; summaries will not be persisted")
		return nil, chain(closers)
	}

	store := adapter.NewMultiResultStore(stores...)
	if c != nil {
		store = adapter.NewOnceResultStore(store, c, persistedClaimTTL)
	}
	logger.Get().Info("Result persistence enabled", zap.String("stores", store.Name()))
	return store, chain(closers)
}

// Describe summarizes the wiring for the startup log.
func Describe(cfg *config.Config) string {
	return fmt.Sprintf("sessions=%s backends=%v", sessionBackend(cfg), cfg.Persistence.Backends)
}

func sessionBackend(cfg *config.Config) string {
	if cfg.Redis.Address == "" {
		return "memory"
	}
	return "redis"
}
