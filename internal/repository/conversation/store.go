// Package conversation provides the in-process store for multi-turn filter
// state. State lives only as long as the process; a restart means every
// conversation starts from its first turn again.
package conversation

import (
	"sync"
	"time"

	"github.com/creatorlens/creatorlens/internal/domain/conversation"
)

// Store is an in-memory conversation state store. Concurrent turns on the
// same conversation id are last-write-wins.
type Store struct {
	mu     sync.RWMutex
	states map[string]conversation.State
}

// NewStore creates an empty conversation store.
func NewStore() *Store {
	return &Store{states: make(map[string]conversation.State)}
}

// Get returns the stored state for id. ok is false for unknown ids, which
// callers treat as a first turn.
func (s *Store) Get(id string) (conversation.State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[id]
	return state, ok
}

// Put stores state under id, stamping the update time.
func (s *Store) Put(id string, state conversation.State) {
	state.UpdatedAt = time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = state
}

// Len reports the number of tracked conversations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}
