package token

import (
	"context"
	"sync"
	"time"
)

// MemoryRevocationStore is a mutex-guarded in-process revocation set. It is
// the default when no shared backend is configured, and what tests use. The
// set lives for the lifetime of the process and is only cleared on restart.
type MemoryRevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{revoked: make(map[string]time.Time)}
}

func (s *MemoryRevocationStore) Add(_ context.Context, jti string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = time.Now().Add(ttl)
	s.pruneLocked()
	return nil
}

func (s *MemoryRevocationStore) Contains(_ context.Context, jti string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	deadline, ok := s.revoked[jti]
	if !ok {
		return false, nil
	}
	// An expired entry is as good as absent; the token it guards is dead anyway.
	return time.Now().Before(deadline), nil
}

// pruneLocked drops entries whose tokens have expired. Called with the write
// lock held; keeps the set bounded by the token TTL.
func (s *MemoryRevocationStore) pruneLocked() {
	now := time.Now()
	for jti, deadline := range s.revoked {
		if now.After(deadline) {
			delete(s.revoked, jti)
		}
	}
}
