package session

import (
	"context"
	"sync"
)

// MemoryStore is the default Store: process-local, nothing survives a
// restart. Sessions are live pointers, so Save is bookkeeping only; the
// per-session lock is what makes in-place mutation safe.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	locks    *lockTable
	limits   Limits
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore(limits Limits) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		locks:    newLockTable(),
		limits:   limits,
	}
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) Lock(id string) func() {
	return s.locks.Lock(id)
}

func (s *MemoryStore) GetOrCreate(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = NewSession(id, s.limits)
		s.sessions[id] = sess
	}
	return sess, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id], nil
}

func (s *MemoryStore) Save(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *MemoryStore) Reset(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
