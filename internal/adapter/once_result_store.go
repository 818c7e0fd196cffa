package adapter

import (
	"context"
	"errors"
	"time"

	"image-judge/internal/cache"
	"image-judge/internal/domain"
	"image-judge/internal/logger"

	"go.uber.org/zap"
)

// OnceResultStore claims a record id in the cache before writing it, so concurrent
// writers of the same run reach the backend at most once. A failed write releases the
// claim. When the cache is unavailable the backend's own duplicate check decides.
type OnceResultStore struct {
	inner domain.ResultStore
	cache domain.Cache
	ttl   time.Duration
}

func NewOnceResultStore(inner domain.ResultStore, c domain.Cache, ttl time.Duration) *OnceResultStore {
	return &OnceResultStore{inner: inner, cache: c, ttl: ttl}
}

// PersistedKey is the cache key claiming a record id.
func PersistedKey(recordID string) string {
	return cache.GenerateCacheKey("result", "persisted", recordID)
}

func (s *OnceResultStore) Name() string {
	return s.inner.Name()
}

func (s *OnceResultStore) SaveResult(ctx context.Context, record *domain.SummaryRecord) error {
	key := PersistedKey(record.ID)
	claimed, err := s.cache.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), s.ttl)
	if err != nil {
		logger.Get().Warn("Failed to claim result key, relying on store", zap.String("key", key), zap.Error(err))
	} else if !claimed {
		return domain.ErrAlreadyPersisted
	}

	if err := s.inner.SaveResult(ctx, record); err != nil {
		if claimed && !errors.Is(err, domain.ErrAlreadyPersisted) {
			if delErr := s.cache.Delete(ctx, key); delErr != nil {
				logger.Get().Warn("Failed to release result key", zap.String("key", key), zap.Error(delErr))
			}
		}
		return err
	}
	return nil
}

// ListResults delegates to the wrapped store.
func (s *OnceResultStore) ListResults(ctx context.Context, limit int) ([]*domain.SummaryRecord, error) {
	if lister, ok := s.inner.(domain.ResultLister); ok {
		return lister.ListResults(ctx, limit)
	}
	return nil, ErrListingUnsupported
}
