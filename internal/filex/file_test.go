package filex

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureParentDir_CreatesNestedDirs(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "a", "b", "state.db")

	dir, err := EnsureParentDir(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != filepath.Join(base, "a", "b") {
		t.Fatalf("unexpected dir: %s", dir)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("expected a directory at %s", dir)
	}
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	dir, err := EnsureParentDir("state.db")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != "." {
		t.Fatalf("expected current dir, got %q", dir)
	}
}
