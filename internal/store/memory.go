// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// Live boards are ephemeral by design: only finished games are written
// to the database, so losing in-memory sessions on restart is fine.
//
// Characteristics:
//   - Stores *game.Engine sessions keyed by engine ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Turn-level serialization is the engine's own concern; the store
//     only guards the map.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/josephgh/frogtrap/internal/game"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the registry interface for live game sessions.
// Implementations may be backed by memory (this package), Redis, etc.
type Store interface {
	// Save registers or updates a session.
	Save(ctx context.Context, e *game.Engine) error

	// Get retrieves a session by engine ID.
	// Returns ErrNotFound if the session does not exist.
	Get(ctx context.Context, id string) (*game.Engine, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex            // guards sessions map
	sessions map[string]*game.Engine // keyed by Engine.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*game.Engine)}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, e *game.Engine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[e.ID] = e
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Engine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.sessions[id]; ok {
		return e, nil
	}
	return nil, ErrNotFound
}
