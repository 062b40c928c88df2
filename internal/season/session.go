package season

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("wizard session not found")

// Clock abstracts time for testing expiry behavior.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Session binds one wizard to an ID and a lock. All mutation of the
// underlying draft happens inside Do, so operations on one session never
// interleave, matching the single-threaded model the composer assumes.
type Session struct {
	ID     string
	wizard *Wizard

	mu         sync.Mutex
	lastActive time.Time
}

// Do runs fn with exclusive access to the session's wizard and refreshes
// the session's activity timestamp.
func (s *Session) Do(clock Clock, fn func(*Wizard) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = clock.Now()
	return fn(s.wizard)
}

// Store holds the live wizard sessions. Sessions are created explicitly,
// removed on abandon or completion, and swept once idle past the TTL.
type Store struct {
	ttl   time.Duration
	clock Clock

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates a session store. A nil clock uses real time; a zero TTL
// disables sweeping.
func NewStore(ttl time.Duration, clock Clock) *Store {
	if clock == nil {
		clock = realClock{}
	}
	return &Store{
		ttl:      ttl,
		clock:    clock,
		sessions: make(map[string]*Session),
	}
}

// Create opens a new wizard session and returns it.
func (st *Store) Create() *Session {
	s := &Session{
		ID:         uuid.New().String(),
		wizard:     NewWizard(),
		lastActive: st.clock.Now(),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get looks up a live session by ID.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Do runs fn against the named session's wizard under its lock.
func (st *Store) Do(id string, fn func(*Wizard) error) error {
	s, err := st.Get(id)
	if err != nil {
		return err
	}
	return s.Do(st.clock, fn)
}

// Remove abandons and drops a session. Unknown IDs are reported so the
// handler can 404. A session mid-submission stays put until the in-flight
// call resolves it; dropping it would strand the submission's result.
func (st *Store) Remove(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.wizard.State() == StateSubmitting {
		return ErrSubmitInProgress
	}
	s.wizard.Abandon()
	delete(st.sessions, id)
	return nil
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep abandons and drops every session idle for longer than the TTL,
// returning how many were removed. Sessions mid-submission are skipped; the
// in-flight call resolves them.
func (st *Store) Sweep() int {
	if st.ttl <= 0 {
		return 0
	}
	cutoff := st.clock.Now().Add(-st.ttl)

	st.mu.Lock()
	var stale []*Session
	for id, s := range st.sessions {
		s.mu.Lock()
		idle := s.lastActive.Before(cutoff)
		submitting := s.wizard.State() == StateSubmitting
		s.mu.Unlock()
		if idle && !submitting {
			stale = append(stale, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range stale {
		s.Do(st.clock, func(w *Wizard) error {
			w.Abandon()
			return nil
		})
	}
	return len(stale)
}
