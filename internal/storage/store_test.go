package storage

import (
	"context"
	"encoding/json"
	"testing"
)

func TestReadsBeforeHydrationReportNotReady(t *testing.T) {
	t.Parallel()

	medium := NewMemoryMedium()
	if err := medium.Save(context.Background(), KeyCart, json.RawMessage(`["persisted"]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store := New(medium, nil)

	if _, ok := store.Get(KeyCart); ok {
		t.Fatal("expected no value before hydration")
	}
	if state := Read[[]string](store, KeyCart); state.Ready {
		t.Fatal("expected not-ready state before hydration")
	}

	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state := Read[[]string](store, KeyCart)
	if !state.Ready || len(state.Value) != 1 || state.Value[0] != "persisted" {
		t.Fatalf("expected persisted value after hydration, got %+v", state)
	}
}

func TestHydrateFirstRunIsEmpty(t *testing.T) {
	t.Parallel()

	store := New(NewMemoryMedium(), nil)
	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.Ready() {
		t.Fatal("expected store to be ready")
	}
	state := Read[map[string]int](store, KeyAuth)
	if !state.Ready || len(state.Value) != 0 {
		t.Fatalf("expected ready-and-empty, got %+v", state)
	}
}

func TestHydrateDropsCorruptEntries(t *testing.T) {
	t.Parallel()

	medium := NewMemoryMedium()
	medium.values[KeyCart] = json.RawMessage(`{"broken`)
	medium.values[KeyAuth] = json.RawMessage(`{"token":"t"}`)

	store := New(medium, nil)
	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := store.Get(KeyCart); ok {
		t.Fatal("expected corrupt entry to be dropped")
	}
	if _, ok := store.Get(KeyAuth); !ok {
		t.Fatal("expected intact entry to survive")
	}
}

func TestReadUndecodableFallsBackToZero(t *testing.T) {
	t.Parallel()

	store := New(NewMemoryMedium(), nil)
	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Set(context.Background(), KeyCart, "just a string"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	state := Read[[]int](store, KeyCart)
	if !state.Ready || state.Value != nil {
		t.Fatalf("expected zero value for mismatched type, got %+v", state)
	}
}

func TestSetSurvivesMediumFailure(t *testing.T) {
	t.Parallel()

	store := New(failingMedium{}, nil)
	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("hydrate should fail soft, got %v", err)
	}

	if err := store.Set(context.Background(), KeyCart, []int{1}); err == nil {
		t.Fatal("expected persistence error to be reported")
	}
	// In-memory state still updated despite the failed durable write.
	if state := Read[[]int](store, KeyCart); !state.Ready || len(state.Value) != 1 {
		t.Fatalf("expected in-memory value to stand, got %+v", state)
	}
}

func TestRemoveDropsKey(t *testing.T) {
	t.Parallel()

	store := New(NewMemoryMedium(), nil)
	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Set(context.Background(), KeyAuth, map[string]string{"token": "t"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Remove(context.Background(), KeyAuth); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.Get(KeyAuth); ok {
		t.Fatal("expected key to be gone")
	}
}

func TestWaitReady(t *testing.T) {
	t.Parallel()

	store := New(NewMemoryMedium(), nil)
	go store.Hydrate(context.Background())

	if err := store.WaitReady(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.Ready() {
		t.Fatal("expected ready after WaitReady")
	}
}

type failingMedium struct{}

func (failingMedium) Load(ctx context.Context) (map[string]json.RawMessage, error) {
	return nil, context.DeadlineExceeded
}

func (failingMedium) Save(ctx context.Context, key string, value json.RawMessage) error {
	return context.DeadlineExceeded
}

func (failingMedium) Delete(ctx context.Context, key string) error {
	return context.DeadlineExceeded
}

func (failingMedium) Close() error { return nil }
