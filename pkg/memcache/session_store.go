// Package mem stores short-lived planning sessions.
package mem

import (
	"context"
	"sync"
	"time"
)

// SessionStore keeps opaque session payloads for a limited time.
type SessionStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Get returns the payload for key, or ok=false if it is missing or expired.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Delete removes key; a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is the single-process SessionStore used when no Redis is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep()
	s.data[key] = entry{
		value:     append([]byte(nil), value...),
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || s.now().After(e.expiresAt) {
		return nil, false, nil
	}
	return append([]byte(nil), e.value...), true, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// sweep drops expired entries. Callers hold the write lock.
func (s *MemoryStore) sweep() {
	now := s.now()
	for k, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, k)
		}
	}
}
