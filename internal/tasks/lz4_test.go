package tasks

import (
	"path/filepath"
	"testing"

	"github.com/danmuck/depforge/internal/buildconf"
)

func TestLZ4SolutionPathUsesBundledVSSolution(t *testing.T) {
	cfg := buildconf.Config{BuildRoot: "build", Versions: map[string]string{"lz4": "1.9.4"}}
	lz4 := NewLZ4(cfg, false, false)

	want := filepath.Join("build", "lz4-1.9.4", "build", "VS2017", "lz4.sln")
	if got := lz4.solutionPath(); got != want {
		t.Fatalf("solutionPath() = %q, want %q", got, want)
	}
}

func TestLZ4PrebuiltIsAlwaysFalse(t *testing.T) {
	lz4 := NewLZ4(buildconf.Config{BuildRoot: "build"}, false, false)
	if lz4.Prebuilt() {
		t.Fatalf("Prebuilt() = true, want false")
	}
}

func TestLZ4ArchiveURLUsesVersionTag(t *testing.T) {
	cfg := buildconf.Config{BuildRoot: "build", Versions: map[string]string{"lz4": "1.9.4"}}
	lz4 := NewLZ4(cfg, false, false)

	want := "https://github.com/lz4/lz4/archive/refs/tags/1.9.4.zip"
	if got := lz4.archiveURL(); got != want {
		t.Fatalf("archiveURL() = %q, want %q", got, want)
	}
}
