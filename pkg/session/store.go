// Package session holds per-engagement state: the current persona, turn
// counter, scam flag and accumulated intelligence, plus the state
// machine that decides when an engagement is over.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lurelab/decoy/pkg/intel"
)

// Status is the lifecycle phase of an engagement.
type Status string

const (
	// StatusActive means the honeypot is still engaging.
	StatusActive Status = "ACTIVE"

	// StatusFinished is terminal: the engagement yielded what it will
	// yield.
	StatusFinished Status = "FINISHED"
)

// State is everything remembered about one engagement between turns.
type State struct {
	Key          string       `json:"key"`
	Status       Status       `json:"status"`
	TurnCount    int          `json:"turn_count"`
	PersonaID    string       `json:"persona_id"`
	ScamDetected bool         `json:"scam_detected"`
	Tactic       string       `json:"tactic"`
	Notes        string       `json:"notes,omitempty"`
	Intelligence intel.Record `json:"intelligence"`
	CreatedAt    time.Time    `json:"created_at"`
	LastTurnAt   time.Time    `json:"last_turn_at"`
}

// NewState creates a fresh active session with its starting persona.
func NewState(key, personaID string) *State {
	now := time.Now()
	return &State{
		Key:          key,
		Status:       StatusActive,
		PersonaID:    personaID,
		Intelligence: intel.NewRecord(),
		CreatedAt:    now,
		LastTurnAt:   now,
	}
}

// Finished reports whether the engagement reached its terminal state.
func (s *State) Finished() bool {
	return s.Status == StatusFinished
}

// Store persists engagement state between turns.
type Store interface {
	// Get retrieves a session by key. Returns nil, nil when not found
	// or expired.
	Get(ctx context.Context, key string) (*State, error)

	// Save creates or updates a session.
	Save(ctx context.Context, state *State) error

	// Delete removes a session.
	Delete(ctx context.Context, key string) error
}

// InMemoryStore implements Store with in-process storage and TTL-based
// cleanup. Suitable for single-node deployments; use RedisStore when
// sessions must survive restarts or span replicas.
type InMemoryStore struct {
	sessions map[string]*State
	mu       sync.RWMutex

	maxAge     time.Duration
	cleanupTTL time.Duration

	stopCleanup chan struct{}
	cleanupOnce sync.Once
}

// StoreOption is a functional option for configuring InMemoryStore.
type StoreOption func(*InMemoryStore)

// WithMaxAge sets the maximum idle age before a session expires.
func WithMaxAge(d time.Duration) StoreOption {
	return func(s *InMemoryStore) {
		s.maxAge = d
	}
}

// WithCleanupInterval sets how often the cleanup routine runs.
func WithCleanupInterval(d time.Duration) StoreOption {
	return func(s *InMemoryStore) {
		s.cleanupTTL = d
	}
}

// NewInMemoryStore creates a new in-memory session store.
func NewInMemoryStore(opts ...StoreOption) *InMemoryStore {
	s := &InMemoryStore{
		sessions:    make(map[string]*State),
		maxAge:      1 * time.Hour,
		cleanupTTL:  5 * time.Minute,
		stopCleanup: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	go s.cleanupLoop()

	return s
}

// Get retrieves a session by key. Returns nil, nil if not found.
func (s *InMemoryStore) Get(_ context.Context, key string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.sessions[key]
	if !ok {
		return nil, nil // Not found is not an error
	}

	// Stale sessions read as absent; actual removal happens in
	// cleanupLoop.
	if time.Since(state.LastTurnAt) > s.maxAge {
		return nil, nil
	}

	return state, nil
}

// Save creates or updates a session.
func (s *InMemoryStore) Save(_ context.Context, state *State) error {
	if state == nil {
		return fmt.Errorf("session state is nil")
	}
	if state.Key == "" {
		return fmt.Errorf("session key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if state.CreatedAt.IsZero() {
		state.CreatedAt = time.Now()
	}
	if state.LastTurnAt.IsZero() {
		state.LastTurnAt = time.Now()
	}
	if state.Status == "" {
		state.Status = StatusActive
	}
	if state.Intelligence == nil {
		state.Intelligence = intel.NewRecord()
	}

	s.sessions[state.Key] = state
	return nil
}

// Delete removes a session.
func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, key)
	return nil
}

// Close stops the cleanup goroutine.
func (s *InMemoryStore) Close() {
	s.cleanupOnce.Do(func() {
		close(s.stopCleanup)
	})
}

func (s *InMemoryStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupTTL)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *InMemoryStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, state := range s.sessions {
		if now.Sub(state.LastTurnAt) > s.maxAge {
			delete(s.sessions, key)
		}
	}
}

// Stats returns current session store statistics.
func (s *InMemoryStore) Stats() StoreStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := StoreStats{
		SessionCount: len(s.sessions),
	}
	for _, state := range s.sessions {
		stats.TotalTurns += state.TurnCount
		if state.Finished() {
			stats.Finished++
		}
	}
	return stats
}

// StoreStats contains session store statistics.
type StoreStats struct {
	SessionCount int `json:"session_count"`
	TotalTurns   int `json:"total_turns"`
	Finished     int `json:"finished"`
}

var _ Store = (*InMemoryStore)(nil)
