package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = 0x42
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// SeedAlbum creates <root>/<relDir> with a single track so the directory
// exists on disk.
func SeedAlbum(t testing.TB, root, relDir string) string {
	t.Helper()

	dir := filepath.Join(root, filepath.FromSlash(relDir))
	WriteFile(t, filepath.Join(dir, "01 - Track.flac"), 128)
	return dir
}
