// Package testutil provides shared scaffolding for storage tests.
package testutil

import (
	"path/filepath"
	"testing"
)

// ScratchPath returns a data-file path inside a per-test temp directory.
// Nothing is created; opening the path creates the file.
func ScratchPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "storage.dat")
}
