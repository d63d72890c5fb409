// Package session owns the per-session registries: the authoritative
// game state and the memory manager share one Session record and one
// lifecycle, so a reset can never orphan half of a session.
package session

import (
	"context"
	"sync"

	"github.com/emberhollow/adventure/pkg/memory"
	"github.com/emberhollow/adventure/pkg/state"
)

// Session is the unit of storage: one game state and its memory manager,
// keyed by session id.
type Session struct {
	ID     string           `json:"id"`
	State  *state.GameState `json:"state"`
	Memory *memory.Manager  `json:"memory"`
}

// Limits configure memory manager sizing for newly created sessions.
type Limits struct {
	ShortMemoryLimit   int
	LongMemoryMaxChars int
}

// NewSession creates a fresh session with starting state.
func NewSession(id string, limits Limits) *Session {
	return &Session{
		ID:     id,
		State:  state.NewGameState(),
		Memory: memory.NewManager(limits.ShortMemoryLimit, limits.LongMemoryMaxChars),
	}
}

// Store is the session registry. GameState and memory are shared mutable
// resources; callers must hold the session lock (Lock) for the duration
// of any read-modify-write cycle. Distinct sessions proceed in parallel.
type Store interface {
	// Ping tests the backing service connection.
	Ping(ctx context.Context) error

	// Close closes the backing service connection.
	Close() error

	// Lock serializes access to one session. The returned function
	// releases the lock.
	Lock(id string) func()

	// GetOrCreate returns the session for id, creating it with starting
	// state on first use.
	GetOrCreate(ctx context.Context, id string) (*Session, error)

	// Get returns the session for id, or nil if it does not exist.
	Get(ctx context.Context, id string) (*Session, error)

	// Save persists a session after mutation.
	Save(ctx context.Context, s *Session) error

	// Reset discards the session's state and memory together.
	Reset(ctx context.Context, id string) error
}

// lockTable hands out one mutex per session id. Locks are never removed;
// the set of live session ids in one process stays small.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*sync.Mutex)}
}

func (lt *lockTable) Lock(id string) func() {
	lt.mu.Lock()
	l, ok := lt.locks[id]
	if !ok {
		l = &sync.Mutex{}
		lt.locks[id] = l
	}
	lt.mu.Unlock()

	l.Lock()
	return l.Unlock
}
