package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gemma3n-site/backend/internal/cache"
)

// Store is an in-process cache.Store. Namespaces survive only as long as the
// process; staleness is handled by namespace versioning, not per-entry TTL,
// so entries never expire individually.
type Store struct {
	mu         sync.RWMutex
	namespaces map[string]*namespace
	stats      Stats
}

type Stats struct {
	Hits   int64
	Misses int64
}

type namespace struct {
	store   *Store
	mu      sync.RWMutex
	entries map[string]*cache.Response
}

func NewStore() *Store {
	return &Store{
		namespaces: make(map[string]*namespace),
	}
}

func (s *Store) Open(ctx context.Context, name string) (cache.Namespace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.namespaces[name]
	if !ok {
		ns = &namespace{
			store:   s,
			entries: make(map[string]*cache.Response),
		}
		s.namespaces[name] = ns
	}
	return ns, nil
}

func (s *Store) Names(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.namespaces))
	for name := range s.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	delete(s.namespaces, name)
	s.mu.Unlock()
	return nil
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (n *namespace) Match(ctx context.Context, key string) (*cache.Response, bool, error) {
	n.mu.RLock()
	resp, found := n.entries[key]
	n.mu.RUnlock()

	n.store.mu.Lock()
	if found {
		n.store.stats.Hits++
	} else {
		n.store.stats.Misses++
	}
	n.store.mu.Unlock()

	if !found {
		return nil, false, nil
	}
	return resp.Clone(), true, nil
}

func (n *namespace) Put(ctx context.Context, key string, resp *cache.Response) error {
	n.mu.Lock()
	n.entries[key] = resp.Clone()
	n.mu.Unlock()
	return nil
}
