package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"firesim/internal/simulation"
)

// entry is one cached ensemble keyed by its handle.
type entry struct {
	handle    string
	ensemble  *simulation.MultiResult
	createdAt time.Time
}

// resultStore caches completed ensembles by handle. Derivation endpoints
// read from it; a dropped handle just means the caller re-submits, since
// re-running the same inputs and seed reproduces the identical ensemble.
type resultStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
	maxAge  time.Duration
	now     func() time.Time
}

func newResultStore(maxAge time.Duration) *resultStore {
	return &resultStore{
		entries: make(map[string]*entry),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// Put caches an ensemble and returns its new handle.
func (s *resultStore) Put(ensemble *simulation.MultiResult) string {
	handle := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[handle] = &entry{
		handle:    handle,
		ensemble:  ensemble,
		createdAt: s.now(),
	}
	return handle
}

// Get looks up a cached ensemble. Expired entries are treated as missing.
func (s *resultStore) Get(handle string) (*simulation.MultiResult, bool) {
	s.mu.RLock()
	e, ok := s.entries[handle]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.maxAge > 0 && s.now().Sub(e.createdAt) > s.maxAge {
		s.Drop(handle)
		return nil, false
	}
	return e.ensemble, true
}

// Drop removes a cached ensemble. Dropping an unknown handle is a no-op.
func (s *resultStore) Drop(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, handle)
}

// Len reports how many ensembles are cached.
func (s *resultStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
