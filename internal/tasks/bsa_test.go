package tasks

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/depforge/internal/buildconf"
)

func bsaTestConfig() buildconf.Config {
	return buildconf.Config{
		BuildRoot: "build",
		Versions: map[string]string{
			"binary_io":  "1.0.0",
			"directxtex": "2.0.0",
			"mmio":       "1.1.0",
			"zlib":       "1.3.1",
			"lz4":        "1.9.4",
			"bsa":        "3.0.0",
		},
	}
}

func TestBSACMakeDefsReferencesEverySibling(t *testing.T) {
	cfg := bsaTestConfig()
	bsa := NewBSA(cfg, false, false)
	defs := bsa.spec.CMakeDefs()

	prefix := defs["CMAKE_PREFIX_PATH"]
	for _, name := range []string{"binary_io", "directxtex", "mmio"} {
		want := filepath.Join(siblingSourcePath(cfg, name), "build")
		if !strings.Contains(prefix, want) {
			t.Fatalf("CMAKE_PREFIX_PATH missing %s build dir: %q", name, prefix)
		}
	}
	if !strings.Contains(prefix, siblingSourcePath(cfg, "zlib")) {
		t.Fatalf("CMAKE_PREFIX_PATH missing zlib source dir: %q", prefix)
	}

	lz4Path := siblingSourcePath(cfg, "lz4")
	if got, want := defs["LZ4_INCLUDE_DIR:PATH"], filepath.Join(lz4Path, "lib"); got != want {
		t.Fatalf("LZ4_INCLUDE_DIR:PATH = %q, want %q", got, want)
	}
	if got, want := defs["LZ4_LIBRARY_RELEASE:PATH"], filepath.Join(lz4Path, "bin", "liblz4.lib"); got != want {
		t.Fatalf("LZ4_LIBRARY_RELEASE:PATH = %q, want %q", got, want)
	}
}

func TestBSADependencyNamesOrderMatchesCLIRegistration(t *testing.T) {
	want := []string{"binary_io", "directxtex", "mmio", "zlib", "lz4"}
	if got := BSADependencyNames(); len(got) != len(want) {
		t.Fatalf("BSADependencyNames() = %v, want %v", got, want)
	} else {
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("BSADependencyNames()[%d] = %q, want %q", i, got[i], want[i])
			}
		}
	}
}
