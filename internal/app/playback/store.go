package playback

import (
	"sync"

	zlog "github.com/rs/zerolog/log"
)

// Listener observes state transitions. Listeners are invoked in dispatch
// order, outside the store lock; dispatching from inside a listener is
// allowed and is queued behind the transition being observed.
type Listener func(prev, next State, action Action)

// Store owns the player state and serializes all transitions through the
// reducer. There is exactly one store per engine instance; it is passed
// by handle, never held in a package-level variable.
type Store struct {
	mu          sync.Mutex
	reducer     *Reducer
	state       State
	listeners   []Listener
	pending     []Action
	dispatching bool
}

// NewStore creates a store with the initial state.
func NewStore(reducer *Reducer) *Store {
	return &Store{
		reducer: reducer,
		state:   NewState(),
	}
}

// State returns a snapshot of the current state. The snapshot shares
// slice backing arrays with the store, but those are never mutated in
// place (the reducer copies on write), so it is safe to read.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener for subsequent transitions.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Dispatch applies an action through the reducer and notifies listeners.
// Transitions run to completion in order: actions dispatched while a
// transition is being processed (including from listeners) are queued
// and drained by the active dispatcher before it returns.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.pending = append(s.pending, a)
	if s.dispatching {
		s.mu.Unlock()
		return
	}
	s.dispatching = true

	for len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]

		prev := s.state
		s.state = s.reducer.Reduce(prev, next)
		cur := s.state
		listeners := append([]Listener(nil), s.listeners...)
		s.mu.Unlock()

		zlog.Debug().Msgf("playback: dispatched %T", next)
		for _, l := range listeners {
			l(prev, cur, next)
		}

		s.mu.Lock()
	}

	s.dispatching = false
	s.mu.Unlock()
}
