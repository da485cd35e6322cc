// internal/store/memory.go
//
// In-memory session store for games served over HTTP.
//
// Characteristics:
//   - Stores *Session values keyed by ID in a map.
//   - The map is guarded by an RWMutex; each Session carries its own mutex
//     because game.Controller is single-goroutine and requests for the same
//     game may arrive concurrently.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordgrid/internal/game"
)

var ErrNotFound = errors.New("not found")

// Session is one game plus the identity that owns it.
type Session struct {
	mu sync.Mutex

	ID       string
	PlayerID string // empty for guests
	DailyKey string // YYYY-MM-DD for daily games, empty otherwise
	Game     *game.Controller
	Created  time.Time
}

// NewSession wraps a controller with a fresh random ID.
func NewSession(g *game.Controller, playerID string) *Session {
	return &Session{ID: randomID(), PlayerID: playerID, Game: g, Created: time.Now()}
}

// Do runs fn with exclusive access to the session's game.
func (s *Session) Do(fn func(g *game.Controller) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.Game)
}

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID; ErrNotFound if missing.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session. Missing IDs are ignored.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
