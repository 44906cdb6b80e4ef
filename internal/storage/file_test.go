package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestFileMediumRoundTrip(t *testing.T) {
	t.Parallel()

	medium, err := NewFileMedium(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	if err := medium.Save(ctx, KeyCart, json.RawMessage(`[{"product_id":1}]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot, err := medium.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(snapshot[KeyCart]) != `[{"product_id":1}]` {
		t.Fatalf("unexpected snapshot: %s", snapshot[KeyCart])
	}

	if err := medium.Delete(ctx, KeyCart); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snapshot, err = medium.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := snapshot[KeyCart]; ok {
		t.Fatal("expected entry to be deleted")
	}
}

func TestFileMediumFirstRun(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "fresh")
	medium, err := NewFileMedium(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snapshot, err := medium.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snapshot) != 0 {
		t.Fatalf("expected empty snapshot on first run, got %v", snapshot)
	}
}

func TestFileMediumDeleteMissingIsNoop(t *testing.T) {
	t.Parallel()

	medium, err := NewFileMedium(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := medium.Delete(context.Background(), "never-written"); err != nil {
		t.Fatalf("expected no-op delete, got %v", err)
	}
}

func TestStoreOverFileMediumFailsSoftOnCorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, KeyCart+".json"), []byte(`{{{`), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	medium, err := NewFileMedium(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	store := New(medium, nil)
	if err := store.Hydrate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := store.Get(KeyCart); ok {
		t.Fatal("expected corrupt file to hydrate as empty")
	}
}
