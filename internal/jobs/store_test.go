// File path: internal/jobs/store_test.go
package jobs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	job, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if job.ID == "" || job.Status != StatusPending {
		t.Fatalf("unexpected new job: %#v", job)
	}

	job.Status = StatusRunning
	job.Attempts = 1
	if err := store.Update(ctx, job); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	loaded, err := store.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.Status != StatusRunning || loaded.Attempts != 1 {
		t.Fatalf("update not persisted: %#v", loaded)
	}

	job.Status = StatusDone
	job.ResultPath = "jobs/x/UDD.docx"
	if err := store.Update(ctx, job); err != nil {
		t.Fatalf("final update failed: %v", err)
	}
	loaded, err = store.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded.ResultPath != "jobs/x/UDD.docx" {
		t.Fatalf("result path not persisted: %#v", loaded)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one job, got %d", len(list))
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Update(ctx, Job{ID: "missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on update, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	defer store.Close()
	exerciseStore(t, store)
}

func TestNewStoreSelectsBackend(t *testing.T) {
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("memory backend: %v", err)
	}
	if _, ok := store.(*MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}

	store, err = NewStore(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("sqlite backend: %v", err)
	}
	if _, ok := store.(*SQLiteStore); !ok {
		t.Fatalf("expected sqlite store, got %T", store)
	}
}
