// Package session provides an in-memory TTL session store
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/services/api/admin/domain"
)

// DefaultTTL bounds how long a login stays valid
const DefaultTTL = 24 * time.Hour

type entry struct {
	userID  uuid.UUID
	expires time.Time
}

// Memory is a mutex guarded map with lazy expiry
// good enough for a single process, swap the SessionStore port for anything shared
type Memory struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]entry

	// seam for expiry tests
	now func() time.Time
}

// Compile-time assertion: Memory implements domain.SessionStore
var _ domain.SessionStore = (*Memory)(nil)

// NewMemory constructs a Memory store, ttl <= 0 uses DefaultTTL
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{ttl: ttl, m: make(map[string]entry), now: time.Now}
}

// Put associates a session id with a user id
func (s *Memory) Put(_ context.Context, sid string, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sid] = entry{userID: userID, expires: s.now().Add(s.ttl)}
	return nil
}

// Get resolves a session id, expired entries are dropped on read
func (s *Memory) Get(_ context.Context, sid string) (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[sid]
	if !ok {
		return uuid.Nil, false
	}
	if s.now().After(e.expires) {
		delete(s.m, sid)
		return uuid.Nil, false
	}
	return e.userID, true
}

// Delete forgets a session id
func (s *Memory) Delete(_ context.Context, sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sid)
}
