package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteImage creates a fake image file with the given name and byte size under
// a fresh temp directory and returns its path. Contents are deterministic so
// copies can be compared byte-for-byte.
func WriteImage(t testing.TB, name string, size int) string {
	t.Helper()

	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}
