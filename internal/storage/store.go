// Package storage is the persisted local state layer. A Store serializes
// values to a durable Medium and restores them on hydration; dependent
// containers gate their reads on hydration so a not-yet-loaded store is
// indistinguishable from an empty one, never from a stale one.
package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/verdantleaf/storefront/pkg/errors"
	"github.com/verdantleaf/storefront/pkg/logger"
)

// Store is a hydration-gated key-value store over a Medium.
type Store struct {
	medium Medium
	logg   *logger.Logger

	mu      sync.RWMutex
	values  map[string]json.RawMessage
	ready   bool
	readyCh chan struct{}
}

func New(medium Medium, logg *logger.Logger) *Store {
	if medium == nil {
		medium = NewMemoryMedium()
	}
	return &Store{
		medium:  medium,
		logg:    logg,
		values:  map[string]json.RawMessage{},
		readyCh: make(chan struct{}),
	}
}

// Hydrate performs the initial load. Absent or unreadable state fails soft to
// empty; the store always becomes ready unless the context is canceled first.
// Callers typically run this concurrently with UI startup.
func (s *Store) Hydrate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snapshot, err := s.medium.Load(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "state load failed, starting empty")
		}
		snapshot = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}
	for key, value := range snapshot {
		if !json.Valid(value) {
			if s.logg != nil {
				s.logg.Warn(s.logg.WithField(ctx, "key", key), "dropping corrupt state entry")
			}
			continue
		}
		s.values[key] = value
	}
	s.ready = true
	close(s.readyCh)
	return nil
}

// Ready reports whether hydration has completed.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// WaitReady blocks until hydration completes or the context is canceled.
func (s *Store) WaitReady(ctx context.Context) error {
	select {
	case <-s.readyCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get returns the raw value for key. Before hydration it always reports
// absent, regardless of what the medium holds.
func (s *Store) Get(key string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.ready {
		return nil, false
	}
	value, ok := s.values[key]
	return value, ok
}

// Set marshals and stores a value. The durable write is best-effort: an
// in-memory update always succeeds, a medium failure is reported but leaves
// the in-memory state standing.
func (s *Store) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(errors.CodeStorage, err, "marshal state value")
	}

	s.mu.Lock()
	s.values[key] = raw
	s.mu.Unlock()

	if err := s.medium.Save(ctx, key, raw); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "key", key), "state persist failed")
		}
		return errors.Wrap(errors.CodeStorage, err, "persist state value")
	}
	return nil
}

// Remove drops a key from memory and the medium.
func (s *Store) Remove(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()

	if err := s.medium.Delete(ctx, key); err != nil {
		return errors.Wrap(errors.CodeStorage, err, "delete state value")
	}
	return nil
}

func (s *Store) Close() error {
	return s.medium.Close()
}

// State wraps a typed read so "not yet loaded" and "loaded and empty" are
// distinct results rather than a nullable value plus a flag.
type State[T any] struct {
	Ready bool
	Value T
}

// Read decodes the value stored under key. Pre-hydration reads are not
// ready; absent or undecodable entries read as the zero value.
func Read[T any](s *Store, key string) State[T] {
	if !s.Ready() {
		return State[T]{}
	}

	var value T
	raw, ok := s.Get(key)
	if !ok {
		return State[T]{Ready: true, Value: value}
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		var zero T
		return State[T]{Ready: true, Value: zero}
	}
	return State[T]{Ready: true, Value: value}
}
