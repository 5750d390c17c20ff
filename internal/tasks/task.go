// Package tasks implements the per-dependency lifecycle (C6/C7):
// fetch, clean, and build-and-install, grounded on the basic_task contract
// repeated across original_source/src/tasks/*.cpp (binary_io, mmio,
// directxtex, bsa) and extrapolated for zlib and lz4, which ship no
// original source in this pack but follow the same CMake/MSBuild shape.
package tasks

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/danmuck/depforge/internal/buildconf"
	"github.com/danmuck/depforge/internal/tools"
)

// Task is the uniform lifecycle contract a dependency build exposes,
// spec.md §4.6's clean/fetch/build_and_install trio plus the read-only
// accessors every concrete task in the C++ source exposes as static
// methods (version, prebuilt, source_path).
type Task interface {
	Name() string
	Version() string
	SourcePath() string
	Prebuilt() bool
	Clean(ctx context.Context, cx tools.Context, c Clean) error
	Fetch(ctx context.Context, cx tools.Context) error
	BuildAndInstall(ctx context.Context, cx tools.Context) error
}

// Spec configures a Base: everything a concrete task needs beyond the
// fetch/clean/build skeleton every task shares.
type Spec struct {
	// Name identifies the task and is used as both the version-table key
	// and the "<name>-<version>" source directory prefix.
	Name string

	// ArchiveURL renders the download URL for a resolved version string,
	// e.g. original_source/src/tasks/binary_io.cpp's source_url().
	ArchiveURL func(version string) string

	// CMakeDefs returns the -D definitions passed to cmake, evaluated
	// lazily so it can read sibling tasks' resolved paths (bsa's
	// CMAKE_PREFIX_PATH, SPEC_FULL.md §4.4). Nil means no extra defs.
	CMakeDefs func() map[string]string

	// Prebuilt marks a dependency with no build step of its own. Every
	// task in this pack returns false (original_source's own comment:
	// "no prebuilts available"), but the hook exists for completeness.
	Prebuilt bool
}

// Base implements the clean/fetch/build_and_install skeleton shared by
// every CMake-driven dependency, so each concrete task in this package is
// little more than a Spec. Grounded on the identical do_clean/do_fetch/
// do_build_and_install bodies in binary_io.cpp, mmio.cpp, directxtex.cpp,
// and bsa.cpp. The lifecycle methods that actually spawn cmake/msbuild/7z
// live in base_windows.go; everything here is pure path and config
// composition, testable on any OS.
type Base struct {
	spec     Spec
	buildCfg buildconf.Config
	verbose  bool
	dry      bool
}

// NewBase constructs a Base task from a Spec and the resolved build
// configuration.
func NewBase(spec Spec, buildCfg buildconf.Config, verbose, dry bool) *Base {
	return &Base{spec: spec, buildCfg: buildCfg, verbose: verbose, dry: dry}
}

func (b *Base) Name() string { return b.spec.Name }

func (b *Base) Version() string {
	return b.buildCfg.Version(b.spec.Name)
}

// SourcePath mirrors conf().path().build() / "<name>-<version>".
func (b *Base) SourcePath() string {
	return filepath.Join(b.buildCfg.BuildRoot, b.spec.Name+"-"+b.Version())
}

func (b *Base) Prebuilt() bool { return b.spec.Prebuilt }

func (b *Base) downloadsDir() string {
	return filepath.Join(b.buildCfg.BuildRoot, "downloads")
}

func (b *Base) archiveURL() string {
	return b.spec.ArchiveURL(b.Version())
}

func sortedDefKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// siblingSourcePath resolves another task's source directory without
// constructing it, the same shortcut bsa.cpp's create_cmake_tool() takes
// when it calls binary_io::source_path() etc. as free functions.
func siblingSourcePath(buildCfg buildconf.Config, name string) string {
	return filepath.Join(buildCfg.BuildRoot, name+"-"+buildCfg.Version(name))
}
