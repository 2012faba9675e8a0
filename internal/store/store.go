// Package store holds the last-fetched list of one catalog entity type.
//
// A Store is only ever replaced wholesale; there is no partial update.
package store

import (
	"sync"
	"time"
)

type Store[T any] struct {
	mu        sync.RWMutex
	items     []T
	version   uint64
	updatedAt time.Time
}

func New[T any]() *Store[T] {
	return &Store[T]{items: []T{}}
}

// Snapshot returns a copy of the current list.
func (s *Store[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Replace overwrites the list. A nil slice is stored as empty.
func (s *Store[T]) Replace(items []T) {
	next := make([]T, len(items))
	copy(next, items)
	s.mu.Lock()
	s.items = next
	s.version++
	s.updatedAt = time.Now()
	s.mu.Unlock()
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Version counts replacements; 0 means never loaded.
func (s *Store[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store[T]) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}
