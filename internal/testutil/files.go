package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTrace writes content to a file in a per-test temporary directory and
// returns its path.
func WriteTrace(t testing.TB, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "trace.txt")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write trace: %v", err)
	}
	return path
}
