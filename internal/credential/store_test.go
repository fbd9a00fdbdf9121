package credential

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// storesUnderTest builds each backend against throwaway state. Redis runs
// against an embedded server so the redis.Nil → absent mapping is exercised
// without external infrastructure.
func storesUnderTest(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), Key))
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return map[string]Store{
		"memory": NewMemStore(),
		"file":   fileStore,
		"redis":  NewRedisStore(rdb),
	}
}

func TestStore_ReadAfterWrite(t *testing.T) {
	ctx := context.Background()

	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			got, err := store.Read(ctx)
			if err != nil {
				t.Fatalf("read empty store: %v", err)
			}
			if got != "" {
				t.Fatalf("expected absent token, got %q", got)
			}

			if err := store.Write(ctx, "tok-1"); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := store.Write(ctx, "tok-2"); err != nil {
				t.Fatalf("overwrite: %v", err)
			}

			got, err = store.Read(ctx)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if got != "tok-2" {
				t.Fatalf("expected most recent write, got %q", got)
			}
		})
	}
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()

	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			// Clearing an empty store is not an error.
			if err := store.Clear(ctx); err != nil {
				t.Fatalf("clear empty store: %v", err)
			}

			if err := store.Write(ctx, "tok"); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := store.Clear(ctx); err != nil {
				t.Fatalf("clear: %v", err)
			}
			if err := store.Clear(ctx); err != nil {
				t.Fatalf("second clear: %v", err)
			}

			got, err := store.Read(ctx)
			if err != nil {
				t.Fatalf("read after clear: %v", err)
			}
			if got != "" {
				t.Fatalf("expected absent token after clear, got %q", got)
			}
		})
	}
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), Key)

	first, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := first.Write(ctx, "persisted"); err != nil {
		t.Fatalf("write: %v", err)
	}

	// A fresh store over the same path models a process restart.
	second, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reopen file store: %v", err)
	}
	got, err := second.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "persisted" {
		t.Fatalf("expected token to survive reopen, got %q", got)
	}
}
