package prompts

import "sync/atomic"

// Store publishes the current Templates to concurrent readers.
// Swaps are atomic. Callers that render several prompts for one request
// should Load a snapshot once and render from it.
type Store struct {
	current atomic.Pointer[Templates]
}

// NewStore creates a store holding t, or the defaults when t is nil.
func NewStore(t *Templates) *Store {
	if t == nil {
		t = Default()
	}
	s := &Store{}
	s.current.Store(t)
	return s
}

// Load returns the current templates.
func (s *Store) Load() *Templates {
	return s.current.Load()
}

// Swap replaces the current templates.
func (s *Store) Swap(t *Templates) {
	if t != nil {
		s.current.Store(t)
	}
}

// Render renders kind against the current templates.
func (s *Store) Render(kind Kind, data Data) (string, error) {
	return s.Load().Render(kind, data)
}
