// Package session keeps the bounded per-conversation state the composer needs
// for continuity and anti-repetition.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mindmate-ai/mindmate/backend/internal/analysis/emotion"
)

// historyCap bounds the rolling utterance history per session.
const historyCap = 5

// Snapshot is an immutable view of a session's state, taken before the
// current turn mutates it.
type Snapshot struct {
	LastEmotion   emotion.Label
	LastBaseReply string
	Recent        []string
}

// State is the mutable per-session record. All access goes through the
// per-session lock held between Acquire and Release, so a session's turns are
// serialized while distinct sessions proceed concurrently.
type State struct {
	mu            sync.Mutex
	lastEmotion   emotion.Label
	lastBaseReply string
	recent        []string
}

// Snapshot copies the current state. Caller must hold the session lock.
func (st *State) Snapshot() Snapshot {
	recent := make([]string, len(st.recent))
	copy(recent, st.recent)
	return Snapshot{
		LastEmotion:   st.lastEmotion,
		LastBaseReply: st.lastBaseReply,
		Recent:        recent,
	}
}

// Remember appends the utterance to the rolling history (evicting the oldest
// entry past capacity) and records the turn's emotion and selected base
// reply. Caller must hold the session lock.
func (st *State) Remember(utterance string, label emotion.Label, baseReply string) {
	st.recent = append(st.recent, utterance)
	if len(st.recent) > historyCap {
		st.recent = st.recent[len(st.recent)-historyCap:]
	}
	st.lastEmotion = label
	st.lastBaseReply = baseReply
}

// Release unlocks the session after a turn's read-compose-write completes.
func (st *State) Release() {
	st.mu.Unlock()
}

// Service owns the keyed session states.
type Service struct {
	mu     sync.RWMutex
	states map[string]*State
}

// NewService bootstraps the in-memory session store.
func NewService() *Service {
	return &Service{states: make(map[string]*State)}
}

// Acquire returns the state for a session, lazily creating an empty one on
// first access, with its per-session lock held. The caller must Release it.
func (s *Service) Acquire(sessionID string) *State {
	s.mu.RLock()
	st, ok := s.states[sessionID]
	s.mu.RUnlock()

	if !ok {
		s.mu.Lock()
		st, ok = s.states[sessionID]
		if !ok {
			st = &State{}
			s.states[sessionID] = st
		}
		s.mu.Unlock()
	}

	st.mu.Lock()
	return st
}

// NewSessionID mints an identifier for a fresh conversation.
func NewSessionID() string {
	return uuid.NewString()
}
