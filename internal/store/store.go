package store

import (
	"sync"

	"socdash/internal/logger"
)

// Observer is notified of every dispatched action.
type Observer interface {
	ActionDispatched(t ActionType)
}

// Listener receives each new snapshot after a dispatch.
type Listener func(State)

// Store owns the current State. All changes go through Dispatch.
type Store struct {
	dispatchMu sync.Mutex // serializes Dispatch so snapshots are observed in order

	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int
	observer  Observer
	log       *logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithInitialState starts the store from s instead of InitialState().
func WithInitialState(s State) Option {
	return func(st *Store) { st.state = s }
}

// WithObserver reports dispatched actions to o.
func WithObserver(o Observer) Option {
	return func(st *Store) { st.observer = o }
}

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(l *logger.Logger) Option {
	return func(st *Store) { st.log = l }
}

// New creates a store for one session.
func New(opts ...Option) *Store {
	s := &Store{
		state:     InitialState(),
		listeners: make(map[int]Listener),
		log:       logger.Default().With("store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a to the current snapshot and notifies listeners.
// Dispatches are applied in call order; listeners run on the caller's goroutine
// and must not call Dispatch themselves.
func (s *Store) Dispatch(a Action) {
	if a == nil {
		return
	}

	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	next, handled := reduce(s.state, a)
	if !handled {
		s.mu.Unlock()
		s.log.Warnf("Unhandled action %T", a)
		return
	}
	s.state = next
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	s.log.Debugf("Dispatched %s", a.Type())
	if s.observer != nil {
		s.observer.ActionDispatched(a.Type())
	}
	for _, fn := range listeners {
		fn(next)
	}
}

// Subscribe registers fn for snapshot updates and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// snapshotListeners returns listeners in registration order. Caller holds s.mu.
func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			out = append(out, fn)
		}
	}
	return out
}
