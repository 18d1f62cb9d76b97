package testsupport

import (
	"path/filepath"
	"testing"

	"cattywampus/internal/history"
)

// MustOpenHistory opens a history.Store in a temp directory and registers
// cleanup.
func MustOpenHistory(t testing.TB) *history.Store {
	t.Helper()

	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
