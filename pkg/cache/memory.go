package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/johssalinas/backend-accenture/pkg/metrics"
)

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is a process-local Store. Values round-trip through JSON like
// they do in Redis, so callers never share mutable state with the cache.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	gens  map[string]int64
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryItem),
		gens:  make(map[string]int64),
		now:   time.Now,
	}
}

func (s *MemoryStore) Driver() string { return "memory" }

func (s *MemoryStore) Get(_ context.Context, key string, dest any) bool {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()

	if !ok || (!item.expiresAt.IsZero() && s.now().After(item.expiresAt)) {
		metrics.CacheMisses.WithLabelValues(s.Driver()).Inc()
		return false
	}
	if err := json.Unmarshal(item.data, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(s.Driver()).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(s.Driver()).Inc()
	return true
}

func (s *MemoryStore) Generation(_ context.Context, prefix string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens[prefix], nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value any, ttl time.Duration, gen int64) (bool, error) {
	if isNil(value) {
		return false, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("cache: marshal %s: %w", key, err)
	}

	item := memoryItem{data: data}
	if ttl > 0 {
		item.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[PrefixOf(key)] != gen {
		return false, nil
	}
	s.items[key] = item
	return true, nil
}

func (s *MemoryStore) Flush(_ context.Context, prefix string) error {
	metrics.CacheEvictions.WithLabelValues(prefix).Inc()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[prefix]++
	for k := range s.items {
		if strings.HasPrefix(k, prefix+":") {
			delete(s.items, k)
		}
	}
	return nil
}

// Len returns the number of entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
