package chartcache

import (
	"context"
	"sync"
	"time"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/chart"
	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/ephemeris"
)

type entry struct {
	chart     ephemeris.Chart
	expiresAt time.Time
}

// MemoryStore is an in-memory chart cache for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore constructs a cache backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get implements chart.Cache.
func (s *MemoryStore) Get(_ context.Context, key string) (ephemeris.Chart, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return ephemeris.Chart{}, false, nil
	}
	if s.hasExpired(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return ephemeris.Chart{}, false, nil
	}
	return e.chart, true, nil
}

// Set caches the chart with an optional TTL. A zero TTL never expires.
func (s *MemoryStore) Set(_ context.Context, key string, c ephemeris.Chart, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.entries[key] = entry{chart: c, expiresAt: exp}
	return nil
}

// Len reports the number of cached charts, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(s.now())
}

var _ chart.Cache = (*MemoryStore)(nil)
