// Package cache holds repository reads in process memory for a short TTL.
package cache

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type item struct {
	value   any
	expires time.Time // zero when the store has no TTL
}

// Store is a TTL map keyed by strings. Concurrent loads of the same key
// share one call to the loader; failed loads are not stored. A load that was
// in flight when DeletePrefix ran returns its value to its callers but does not
// store it, and later callers start a fresh load.
type Store struct {
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mu    sync.RWMutex
	items map[string]item
	// gen counts invalidations and is guarded by mu.
	gen uint64
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]item),
	}
}

// Get returns a live entry and evicts an expired one.
func (s *Store) Get(_ context.Context, key string) (any, bool) {
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !it.expires.IsZero() && !s.now().Before(it.expires) {
		s.mu.Lock()
		if cur, still := s.items[key]; still && cur.expires.Equal(it.expires) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return it.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}
	s.mu.Lock()
	s.items[key] = s.newItem(value)
	s.mu.Unlock()
}

func (s *Store) newItem(value any) item {
	it := item{value: value}
	if s.ttl > 0 {
		it.expires = s.now().Add(s.ttl)
	}
	return it
}

// setAt stores value only if no invalidation happened since gen was read.
func (s *Store) setAt(key string, value any, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	s.items[key] = s.newItem(value)
	return true
}

func (s *Store) generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// DeletePrefix drops every key starting with one of prefixes. Empty
// prefixes are ignored rather than clearing the store.
func (s *Store) DeletePrefix(_ context.Context, prefixes ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	for key := range s.items {
		for _, p := range prefixes {
			if p != "" && strings.HasPrefix(key, p) {
				delete(s.items, key)
				break
			}
		}
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// GetOrLoad returns the cached value for key or calls load once for all
// concurrent callers. An empty key bypasses the cache.
func (s *Store) GetOrLoad(ctx context.Context, key string, load func(context.Context) (any, error)) (any, error) {
	if load == nil {
		return nil, errors.New("cache: nil loader")
	}
	if key == "" {
		return load(ctx)
	}
	if v, ok := s.Get(ctx, key); ok {
		return v, nil
	}

	gen := s.generation()
	v, err, _ := s.group.Do(strconv.FormatUint(gen, 10)+"|"+key, func() (any, error) {
		if v, ok := s.Get(ctx, key); ok {
			return v, nil
		}
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		s.setAt(key, v, gen)
		return v, nil
	})
	return v, err
}
