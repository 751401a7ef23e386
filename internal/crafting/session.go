package crafting

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/SpiritForge_Go/internal/domain"
)

// sessionStore keeps crafting assignments in memory until they complete,
// are cancelled, or expire. Callers always receive copies.
type sessionStore struct {
	mu  sync.Mutex
	lru *expirable.LRU[string, *domain.Assignment]
}

func newSessionStore(size int, ttl time.Duration) *sessionStore {
	if size <= 0 {
		size = DefaultSessionCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &sessionStore{
		lru: expirable.NewLRU[string, *domain.Assignment](size, nil, ttl),
	}
}

func (s *sessionStore) Get(id string) (*domain.Assignment, bool) {
	a, ok := s.lru.Get(id)
	if !ok {
		return nil, false
	}
	return a.Clone(), true
}

func (s *sessionStore) Put(a *domain.Assignment) {
	s.lru.Add(a.ID, a.Clone())
}

// Update replaces a live session. It refuses sessions that were completed,
// cancelled or expired in the meantime.
func (s *sessionStore) Update(a *domain.Assignment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.lru.Contains(a.ID) {
		return false
	}
	s.lru.Add(a.ID, a.Clone())
	return true
}

func (s *sessionStore) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lru.Remove(id)
}

func (s *sessionStore) Len() int {
	return s.lru.Len()
}
