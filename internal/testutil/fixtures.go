package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// FixturePath returns the absolute path of a file under the repository's
// testdata directory, independent of the calling package's directory.
func FixturePath(t testing.TB, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate testutil source file")
	}
	path := filepath.Join(filepath.Dir(file), "..", "..", "testdata", name)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("fixture %s: %v", name, err)
	}
	return path
}

// CopyFixture copies a testdata file into a fresh temporary directory and returns
// the new path. Tests that rewrite the data file use it.
func CopyFixture(t testing.TB, name string) string {
	t.Helper()
	data, err := os.ReadFile(FixturePath(t, name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	dst := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(dst, data, 0o600); err != nil {
		t.Fatalf("write fixture copy: %v", err)
	}
	return dst
}
