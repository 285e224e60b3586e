// Package state owns a single state value and notifies subscribers after every change.
package state

import (
	"sync"
)

// Store holds a value of type S. Transitions are pure functions passed to Dispatch.
//
// Subscribers run synchronously in subscription order, after the new value is stored and outside the lock, so they
// may read the store but must not Dispatch to it.
type Store[S any] struct {
	mu          sync.Mutex
	current     S
	nextID      int
	subscribers []subscriber[S]
}

type subscriber[S any] struct {
	id int
	fn func(S)
}

// NewStore returns a store initialised with initial.
func NewStore[S any](initial S) *Store[S] {
	return &Store[S]{current: initial} //nolint:exhaustruct // zero values are fine
}

// Get returns the current value.
func (s *Store[S]) Get() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Dispatch replaces the value with transition(current) and notifies subscribers. It returns the new value.
func (s *Store[S]) Dispatch(transition func(S) S) S {
	s.mu.Lock()
	s.current = transition(s.current)
	next := s.current
	subscribers := append([]subscriber[S](nil), s.subscribers...)
	s.mu.Unlock()

	for _, sub := range subscribers {
		sub.fn(next)
	}
	return next
}

// Subscribe registers fn for change notifications. The returned function unsubscribes; calling it twice is safe.
func (s *Store[S]) Subscribe(fn func(S)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subscribers = append(s.subscribers, subscriber[S]{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}
