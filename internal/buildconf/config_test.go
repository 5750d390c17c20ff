package buildconf

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "depforge.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[versions]
binary_io = "1.0.0"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BuildRoot != "build" {
		t.Errorf("BuildRoot default = %q, want %q", cfg.BuildRoot, "build")
	}
	if cfg.Tools.CMake != "cmake" {
		t.Errorf("Tools.CMake default = %q, want %q", cfg.Tools.CMake, "cmake")
	}
	if cfg.Version("binary_io") != "1.0.0" {
		t.Errorf("Version(binary_io) = %q, want 1.0.0", cfg.Version("binary_io"))
	}
	if cfg.Version("missing") != "" {
		t.Errorf("Version(missing) = %q, want empty", cfg.Version("missing"))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("Load: expected error for missing file")
	}
}
