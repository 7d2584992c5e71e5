package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFiles writes name → content pairs into a fresh temporary directory and
// returns its path.
//
// Postcondition: every file exists, or the test has failed.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", path, err)
		}
	}
	return dir
}
