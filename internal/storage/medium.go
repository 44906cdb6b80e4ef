package storage

import (
	"context"
	"encoding/json"
)

// Persisted state keys. The cart and the combined auth state are the only
// durable client-side state.
const (
	KeyCart = "cart-storage"
	KeyAuth = "auth-storage"
)

// Medium is a durable key-value backend. Load returns the full snapshot used
// for hydration; a medium that cannot read an individual entry drops it
// rather than failing the whole load.
type Medium interface {
	Load(ctx context.Context) (map[string]json.RawMessage, error)
	Save(ctx context.Context, key string, value json.RawMessage) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// MemoryMedium keeps state in-process. Used by tests and as a fallback when
// no durable medium is available.
type MemoryMedium struct {
	values map[string]json.RawMessage
}

func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{values: map[string]json.RawMessage{}}
}

func (m *MemoryMedium) Load(ctx context.Context) (map[string]json.RawMessage, error) {
	snapshot := make(map[string]json.RawMessage, len(m.values))
	for k, v := range m.values {
		snapshot[k] = v
	}
	return snapshot, nil
}

func (m *MemoryMedium) Save(ctx context.Context, key string, value json.RawMessage) error {
	m.values[key] = value
	return nil
}

func (m *MemoryMedium) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func (m *MemoryMedium) Close() error {
	return nil
}
