package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"image-judge/internal/cache"
	"image-judge/internal/domain"
	"image-judge/internal/logger"

	"go.uber.org/zap"
)

const (
	sessionCacheService = "session"
	sessionCacheObject  = "state"
)

// SessionCacheKey is the cache key of a session snapshot.
func SessionCacheKey(id string) string {
	return cache.GenerateCacheKey(sessionCacheService, sessionCacheObject, id)
}

// cacheSessionRepository stores session snapshots as JSON in a domain.Cache.
type cacheSessionRepository struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewCacheSessionRepository creates a session repository on top of a cache. Snapshots
// expire ttl after their last write; zero keeps them forever.
func NewCacheSessionRepository(c domain.Cache, ttl time.Duration) domain.SessionRepository {
	return &cacheSessionRepository{cache: c, ttl: ttl}
}

func (r *cacheSessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := r.cache.Get(ctx, SessionCacheKey(id))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.ErrSessionMissing
		}
		return nil, fmt.Errorf("failed to read session %s: %w", id, err)
	}
	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	// Reads keep an idle session alive, e.g. a client polling the clock.
	if r.ttl > 0 {
		if err := r.cache.Expire(ctx, SessionCacheKey(id), r.ttl); err != nil {
			logger.Get().Warn("Failed to refresh session expiry", zap.Error(err), zap.String("sessionID", id))
		}
	}
	return &session, nil
}

func (r *cacheSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", session.ID, err)
	}
	if err := r.cache.Set(ctx, SessionCacheKey(session.ID), string(raw), r.ttl); err != nil {
		return fmt.Errorf("failed to write session %s: %w", session.ID, err)
	}
	return nil
}

func (r *cacheSessionRepository) Ping(ctx context.Context) error {
	return r.cache.Ping(ctx)
}

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

// memorySessionRepository keeps snapshots in process memory. It is used when no Redis
// address is configured.
type memorySessionRepository struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

// NewMemorySessionRepository creates an in-process session repository.
func NewMemorySessionRepository(ttl time.Duration) domain.SessionRepository {
	return &memorySessionRepository{
		data: make(map[string]memoryEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (r *memorySessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.Lock()
	entry, ok := r.data[id]
	if ok && !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt) {
		delete(r.data, id)
		ok = false
	}
	if ok && r.ttl > 0 {
		entry.expiresAt = r.now().Add(r.ttl)
		r.data[id] = entry
	}
	r.mu.Unlock()
	if !ok {
		return nil, domain.ErrSessionMissing
	}

	var session domain.Session
	if err := json.Unmarshal(entry.raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &session, nil
}

func (r *memorySessionRepository) Save(ctx context.Context, session *domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", session.ID, err)
	}
	entry := memoryEntry{raw: raw}
	if r.ttl > 0 {
		entry.expiresAt = r.now().Add(r.ttl)
	}
	r.mu.Lock()
	r.data[session.ID] = entry
	r.mu.Unlock()
	return nil
}

func (r *memorySessionRepository) Ping(ctx context.Context) error {
	return nil
}
