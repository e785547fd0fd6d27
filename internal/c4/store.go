package c4

import "sync"

// Store holds the one diagram model currently open in the editor and notifies
// subscribers when the editing layer mutates it.
//
// Writes travel two distinct paths. Set and Update are the edit path: they
// replace the model and notify subscribers. Hydrate and Reset are the load
// path: they replace the model silently, so content loaded from the server is
// never mistaken for an edit that needs saving.
type Store struct {
	mu     sync.RWMutex
	model  Model
	nextID int
	subs   []subscriber
}

type subscriber struct {
	id int
	fn func(Model)
}

// NewStore returns a store holding an empty model.
func NewStore() *Store {
	return &Store{model: Empty()}
}

// Current returns a deep copy of the current model.
func (s *Store) Current() Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model.Clone()
}

// Set replaces the model as an edit and notifies subscribers with a snapshot.
func (s *Store) Set(m Model) {
	s.mu.Lock()
	s.model = m.Normalize().Clone()
	snapshot := s.model.Clone()
	subs := append([]subscriber(nil), s.subs...)
	s.mu.Unlock()

	// Callbacks run outside the lock so a subscriber may read the store.
	for _, sub := range subs {
		sub.fn(snapshot)
	}
}

// Update applies an in-place mutation as an edit and notifies subscribers.
func (s *Store) Update(mutate func(*Model)) {
	s.mu.Lock()
	m := s.model.Clone()
	s.mu.Unlock()

	mutate(&m)
	s.Set(m)
}

// Hydrate replaces the model without notifying subscribers.
func (s *Store) Hydrate(m Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = m.Normalize().Clone()
}

// Reset hydrates the store with an empty model.
func (s *Store) Reset() {
	s.Hydrate(Empty())
}

// Subscribe registers fn to be called with a snapshot after every edit. The
// returned function removes the subscription; calling it more than once is a
// no-op.
func (s *Store) Subscribe(fn func(Model)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
