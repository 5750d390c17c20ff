package tools

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRemoveAllDeletesExistingDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "source")
	if err := os.MkdirAll(filepath.Join(target, "nested"), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := removeAll(target); err != nil {
		t.Fatalf("removeAll: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("expected %s removed, stat err = %v", target, err)
	}
}

func TestRemoveAllToleratesMissingPath(t *testing.T) {
	dir := t.TempDir()
	if err := removeAll(filepath.Join(dir, "never-existed")); err != nil {
		t.Fatalf("removeAll on absent path: %v", err)
	}
}
