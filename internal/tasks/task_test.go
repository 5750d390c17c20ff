package tasks

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/danmuck/depforge/internal/buildconf"
)

func testBuildConfig() buildconf.Config {
	return buildconf.Config{
		BuildRoot: "build",
		Tools: buildconf.ToolPaths{
			CMake:    "cmake",
			MSBuild:  "msbuild",
			SevenZip: "7z",
		},
		Versions: map[string]string{
			"binary_io": "1.0.0",
		},
	}
}

func TestBaseSourcePathJoinsNameAndVersion(t *testing.T) {
	base := NewBase(Spec{Name: "binary_io"}, testBuildConfig(), false, false)
	if got, want := base.SourcePath(), filepath.Join("build", "binary_io-1.0.0"); got != want {
		t.Fatalf("SourcePath() = %q, want %q", got, want)
	}
}

func TestBaseVersionReadsFromConfig(t *testing.T) {
	base := NewBase(Spec{Name: "binary_io"}, testBuildConfig(), false, false)
	if got := base.Version(); got != "1.0.0" {
		t.Fatalf("Version() = %q, want 1.0.0", got)
	}
}

func TestBaseVersionMissingIsEmpty(t *testing.T) {
	base := NewBase(Spec{Name: "unpinned"}, testBuildConfig(), false, false)
	if got := base.Version(); got != "" {
		t.Fatalf("Version() for unpinned task = %q, want empty", got)
	}
}

func TestBasePrebuiltDefaultsFalse(t *testing.T) {
	base := NewBase(Spec{Name: "binary_io"}, testBuildConfig(), false, false)
	if base.Prebuilt() {
		t.Fatalf("Prebuilt() = true, want false for a cmake-driven task")
	}
}

func TestSortedDefKeysIsDeterministic(t *testing.T) {
	defs := map[string]string{"BUILD_SAMPLE": "OFF", "BUILD_TOOLS": "OFF", "BUILD_TESTING": "OFF"}
	got := sortedDefKeys(defs)
	want := []string{"BUILD_SAMPLE", "BUILD_TESTING", "BUILD_TOOLS"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sortedDefKeys = %v, want %v", got, want)
	}
}

func TestSiblingSourcePathMatchesTaskOwnSourcePath(t *testing.T) {
	cfg := testBuildConfig()
	base := NewBase(Spec{Name: "binary_io"}, cfg, false, false)
	if got := siblingSourcePath(cfg, "binary_io"); got != base.SourcePath() {
		t.Fatalf("siblingSourcePath(%q) = %q, want %q matching Base.SourcePath()", "binary_io", got, base.SourcePath())
	}
}
