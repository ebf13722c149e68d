package state

import "sync"

// Listener receives the full state after every Set.
type Listener func(State)

type subscription struct {
	id uint64
	fn Listener
}

// Store is the single writer of State. Construct it once with New and pass
// the pointer to every consumer.
type Store struct {
	mu        sync.RWMutex
	state     State
	listeners []subscription
	nextID    uint64
}

// New returns a Store holding initial.
func New(initial State) *Store {
	return &Store{state: initial.clone()}
}

// Get returns a copy of the current state.
func (s *Store) Get() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Set applies patches in order, then calls every listener synchronously in
// subscription order with a copy of the new state. Each call notifies, even
// when nothing changed. A panicking listener is not recovered: the panic
// reaches the caller and later listeners are skipped for that cycle.
func (s *Store) Set(patches ...Patch) {
	s.mu.Lock()
	for _, p := range patches {
		if p != nil {
			p(&s.state)
		}
	}
	snapshot := s.state.clone()
	listeners := make([]subscription, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, sub := range listeners {
		sub.fn(snapshot.clone())
	}
}

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}
