// Package refcache is a read-through cache for the reference option lists
// (time slots, classes, teachers, rooms, semesters) the scheduling screen
// keeps re-requesting. Entries live in process memory with a TTL and,
// when configured, in a shared Redis instance so several console sessions
// reuse the same fetches.
package refcache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/hocvien-dev/timetable-console/pkg/errors"
	"github.com/hocvien-dev/timetable-console/pkg/metrics"
)

const keyPrefix = "ttc:ref:"

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// Store caches reference payloads keyed by option-list name.
type Store struct {
	redis   *redis.Client
	ttl     time.Duration
	metrics *metrics.Service
	logger  *zap.Logger

	mu    sync.Mutex
	local map[string]entry
}

// New builds a store. client may be nil for in-process-only caching.
func New(client *redis.Client, ttl time.Duration, m *metrics.Service, logger *zap.Logger) *Store {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		redis:   client,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
		local:   make(map[string]entry),
	}
}

// GetOrLoad returns the cached value for key, calling load on a miss and
// caching its result. dest receives the value either way.
func (s *Store) GetOrLoad(ctx context.Context, key string, dest interface{}, load func(context.Context) (interface{}, error)) error {
	if err := s.get(ctx, key, dest); err == nil {
		s.metrics.RecordCacheLookup(true)
		return nil
	} else if appErrors.FromError(err).Code != appErrors.ErrCacheMiss.Code {
		s.logger.Warn("reference cache read failed", zap.String("key", key), zap.Error(err))
	}
	s.metrics.RecordCacheLookup(false)

	value, err := load(ctx)
	if err != nil {
		return err
	}
	if err := s.set(ctx, key, value); err != nil {
		s.logger.Warn("reference cache write failed", zap.String("key", key), zap.Error(err))
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal loaded value for %s: %w", key, err)
	}
	return json.Unmarshal(payload, dest)
}

// Invalidate drops one cached option list, e.g. after a semester edit.
func (s *Store) Invalidate(ctx context.Context, key string) {
	s.mu.Lock()
	delete(s.local, key)
	s.mu.Unlock()

	if s.redis != nil {
		if err := s.redis.Del(ctx, keyPrefix+key).Err(); err != nil {
			s.logger.Warn("reference cache invalidate failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// Flush clears every cached option list.
func (s *Store) Flush(ctx context.Context) {
	s.mu.Lock()
	s.local = make(map[string]entry)
	s.mu.Unlock()

	if s.redis == nil {
		return
	}
	iter := s.redis.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.redis.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn("reference cache flush failed", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("reference cache scan failed", zap.Error(err))
	}
}

func (s *Store) get(ctx context.Context, key string, dest interface{}) error {
	s.mu.Lock()
	cached, ok := s.local[key]
	s.mu.Unlock()
	if ok && time.Now().Before(cached.expiresAt) {
		return json.Unmarshal(cached.payload, dest)
	}

	if s.redis == nil {
		return appErrors.ErrCacheMiss
	}

	raw, err := s.redis.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return appErrors.ErrCacheMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	s.mu.Lock()
	s.local[key] = entry{payload: raw, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()

	return json.Unmarshal(raw, dest)
}

func (s *Store) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}

	s.mu.Lock()
	s.local[key] = entry{payload: payload, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()

	if s.redis != nil {
		if err := s.redis.Set(ctx, keyPrefix+key, payload, s.ttl).Err(); err != nil {
			return fmt.Errorf("redis set %s: %w", key, err)
		}
	}
	return nil
}
