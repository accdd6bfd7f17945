package testutil

import (
	"testing"

	"github.com/taskmaster-app/taskmaster/internal/storage"
	"github.com/taskmaster-app/taskmaster/internal/store"
)

// NewTestWorkspace creates a workspace store backed by in-memory
// storage, so tests exercise the full commit/persist path without
// touching disk.
func NewTestWorkspace(t *testing.T) *store.Workspace {
	t.Helper()
	return store.NewWorkspace(storage.NewMemoryStorage())
}

// NewTestSQLiteStorage creates an in-memory SQLiteStorage with all
// migrations applied. It automatically closes the storage when the
// test completes.
func NewTestSQLiteStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	s, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test storage: %v", err)
		}
	})

	return s
}
