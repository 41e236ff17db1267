package cache

import (
	"context"
	"sync"
	"time"
)

type entry[T any] struct {
	v   T
	exp time.Time
}

type expiringMap[T any] struct {
	mu  sync.Mutex
	m   map[string]entry[T]
	now func() time.Time
}

func newExpiringMap[T any](now func() time.Time) *expiringMap[T] {
	return &expiringMap[T]{m: make(map[string]entry[T]), now: now}
}

// getLocked drops the entry when it has expired.
func (e *expiringMap[T]) getLocked(key string) (T, bool) {
	it, ok := e.m[key]
	if !ok {
		var zero T
		return zero, false
	}
	if !it.exp.IsZero() && !e.now().Before(it.exp) {
		delete(e.m, key)
		var zero T
		return zero, false
	}
	return it.v, true
}

func (e *expiringMap[T]) putLocked(key string, v T, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = e.now().Add(ttl)
	}
	e.m[key] = entry[T]{v: v, exp: exp}
}

type MemorySessionStore struct {
	m   *expiringMap[Session]
	ttl time.Duration
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return newMemorySessionStore(ttl, time.Now)
}

func newMemorySessionStore(ttl time.Duration, now func() time.Time) *MemorySessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemorySessionStore{m: newExpiringMap[Session](now), ttl: ttl}
}

func (s *MemorySessionStore) Start(_ context.Context, sess Session) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	now := s.m.now().UTC()
	sess.CreatedAt, sess.UpdatedAt = now, now
	s.m.putLocked(sess.UserID, sess, s.ttl)
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, userID string) (Session, bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	sess, ok := s.m.getLocked(userID)
	return sess, ok, nil
}

func (s *MemorySessionStore) Rotate(_ context.Context, userID, oldSID, newSID string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	sess, ok := s.m.getLocked(userID)
	if !ok || sess.SessionID != oldSID {
		return false, nil
	}
	sess.SessionID = newSID
	sess.UpdatedAt = s.m.now().UTC()
	s.m.putLocked(userID, sess, s.ttl)
	return true, nil
}

func (s *MemorySessionStore) Revoke(_ context.Context, userID string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.m, userID)
	return nil
}

type MemoryTokenStore struct {
	m *expiringMap[string]
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{m: newExpiringMap[string](time.Now)}
}

func (s *MemoryTokenStore) Put(_ context.Context, key, value string, ttl time.Duration) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	s.m.putLocked(key, value, ttl)
	return nil
}

func (s *MemoryTokenStore) Take(_ context.Context, key string) (string, bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	v, ok := s.m.getLocked(key)
	delete(s.m.m, key)
	return v, ok, nil
}

var (
	_ SessionStore = (*MemorySessionStore)(nil)
	_ TokenStore   = (*MemoryTokenStore)(nil)
)
