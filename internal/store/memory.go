// internal/store/memory.go
//
// In-memory session store.
// Each Session owns one game state and the seeded reducer that advances it.
//
// Characteristics:
//   - Sessions keyed by a random UUID.
//   - Actions on one session are serialized by that session's mutex; the
//     engine itself does no locking.
//   - Get, Touch and Dispatch refresh a session's last-seen time; Sweep evicts
//     sessions idle for too long. State is lost when the process exits.

package store

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/unscramble/internal/game"
)

// ErrNotFound is returned for unknown (or evicted) session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the session operations used by the transports.
type Store interface {
	// Create starts a session in the initial state.
	Create(ctx context.Context, opts Options) (*Session, error)

	// Get retrieves a session by ID and marks it as seen.
	Get(ctx context.Context, id string) (*Session, error)

	// Touch marks a session as seen without reading it.
	Touch(ctx context.Context, id string) error

	// Dispatch applies actions to a session in order and returns the result.
	Dispatch(ctx context.Context, id string, actions ...game.Action) (game.State, error)

	// Delete drops a session. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Sweep evicts sessions idle for longer than idle and reports how many.
	Sweep(idle time.Duration) int

	// Len reports the number of live sessions.
	Len() int
}

// Options configures a new session.
type Options struct {
	Seed  int64 // RNG seed; 0 picks one from the clock
	Daily bool  // informational: Seed came from the daily schedule
}

// Session is one player's game.
type Session struct {
	ID    string
	Seed  int64
	Daily bool

	mu       sync.Mutex
	reducer  *game.Reducer
	state    game.State
	lastSeen time.Time
}

// State returns the session's current state.
func (s *Session) State() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// memory is a map-based Store implementation.
type memory struct {
	mu       sync.RWMutex // guards sessions
	sessions map[string]*Session
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session), now: time.Now}
}

func (m *memory) Create(ctx context.Context, opts Options) (*Session, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = m.now().UnixNano()
	}
	s := &Session{
		ID:       uuid.NewString(),
		Seed:     seed,
		Daily:    opts.Daily,
		reducer:  game.NewReducer(rand.New(rand.NewSource(seed))),
		state:    game.InitialState(),
		lastSeen: m.now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Debug().Str("session", s.ID).Int64("seed", seed).Bool("daily", opts.Daily).Msg("session created")
	return s, nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	s.lastSeen = m.now()
	s.mu.Unlock()
	return s, nil
}

func (m *memory) Touch(ctx context.Context, id string) error {
	_, err := m.Get(ctx, id)
	return err
}

func (m *memory) Dispatch(ctx context.Context, id string, actions ...game.Action) (game.State, error) {
	s, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	before := s.state.Phase()
	for _, a := range actions {
		s.state = s.reducer.Transition(s.state, a)
	}
	s.lastSeen = m.now()

	if after := s.state.Phase(); after != before {
		log.Debug().Str("session", id).Str("from", string(before)).Str("to", string(after)).Msg("phase changed")
	}
	return s.state, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Sweep(idle time.Duration) int {
	cutoff := m.now().Add(-idle)

	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		stale := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if stale {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
