package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	applog "storeadmin/internal/log"
	"storeadmin/internal/store"
)

type State string

const (
	StateIdle       State = "idle"
	StatePending    State = "pending"
	StateRefreshing State = "refreshing"
	StateFailed     State = "failed"
)

// ErrReloadFailed marks a write the API accepted whose follow-up list
// reload failed. The store still holds the list from before the write.
var ErrReloadFailed = errors.New("reload after write failed")

// ReloadError carries the cause of a failed reload after a successful write.
// It matches both ErrReloadFailed and the cause under errors.Is/As.
type ReloadError struct {
	Op  string
	Err error
}

func (e *ReloadError) Error() string { return e.Op + ": reload after write: " + e.Err.Error() }

func (e *ReloadError) Unwrap() []error { return []error{ErrReloadFailed, e.Err} }

// ListFunc fetches the authoritative list of one entity type.
type ListFunc[T any] func(ctx context.Context) ([]T, error)

// Status is a point-in-time view of a Synchronizer.
type Status struct {
	State     State
	LastError error
	Version   uint64
	UpdatedAt time.Time
}

// Synchronizer keeps a Store equal to the remote list: every successful
// write is followed by a full reload. A failed write or reload leaves the
// store as it was.
type Synchronizer[T any] struct {
	name  string
	store *store.Store[T]
	list  ListFunc[T]

	mu      sync.Mutex
	state   State
	lastErr error
}

func NewSynchronizer[T any](name string, list ListFunc[T]) *Synchronizer[T] {
	return &Synchronizer[T]{name: name, store: store.New[T](), list: list, state: StateIdle}
}

func (s *Synchronizer[T]) Store() *store.Store[T] { return s.store }

func (s *Synchronizer[T]) Snapshot() []T { return s.store.Snapshot() }

func (s *Synchronizer[T]) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{State: s.state, LastError: s.lastErr, Version: s.store.Version(), UpdatedAt: s.store.UpdatedAt()}
}

func (s *Synchronizer[T]) set(st State, err error) {
	s.mu.Lock()
	s.state = st
	if st != StatePending && st != StateRefreshing {
		s.lastErr = err
	}
	s.mu.Unlock()
}

// Load replaces the store with a fresh list.
func (s *Synchronizer[T]) Load(ctx context.Context) error {
	s.set(StateRefreshing, nil)
	items, err := s.list(ctx)
	if err != nil {
		applog.L().Warn("sync.load.fail", zap.String("store", s.name), zap.Error(err))
		s.set(StateFailed, err)
		return err
	}
	s.store.Replace(items)
	s.set(StateIdle, nil)
	return nil
}

// Write runs one remote write and, on success, reloads the store before
// returning. op names the write in logs. A reload failure after an
// accepted write comes back as a *ReloadError.
func (s *Synchronizer[T]) Write(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	s.set(StatePending, nil)
	if err := fn(ctx); err != nil {
		applog.L().Warn("sync.write.fail", zap.String("store", s.name), zap.String("op", op), zap.Error(err))
		s.set(StateFailed, err)
		return err
	}
	if err := s.Load(ctx); err != nil {
		return &ReloadError{Op: op, Err: err}
	}
	return nil
}
