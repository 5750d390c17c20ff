package tasks

import (
	"path/filepath"
	"strings"

	"github.com/danmuck/depforge/internal/buildconf"
)

// NewBSA builds the bsa task, grounded on original_source/src/tasks/
// bsa.cpp — the one task whose cmake invocation reaches across the
// registry into its own dependencies: CMAKE_PREFIX_PATH strings together
// binary_io/directxtex/mmio's build directories and zlib's source
// directory, and
// LZ4_INCLUDE_DIR/LZ4_LIBRARY_RELEASE point straight at lz4's checkout
// (SPEC_FULL.md §4.4).
func NewBSA(buildCfg buildconf.Config, verbose, dry bool) *Base {
	return NewBase(Spec{
		Name: "bsa",
		ArchiveURL: func(version string) string {
			return "https://github.com/Ryan-rsm-McKenzie/bsa/archive/refs/tags/" + version + ".zip"
		},
		CMakeDefs: func() map[string]string {
			prefixes := []string{
				filepath.Join(siblingSourcePath(buildCfg, "binary_io"), "build"),
				filepath.Join(siblingSourcePath(buildCfg, "directxtex"), "build"),
				filepath.Join(siblingSourcePath(buildCfg, "mmio"), "build"),
				siblingSourcePath(buildCfg, "zlib"),
			}
			lz4Path := siblingSourcePath(buildCfg, "lz4")

			return map[string]string{
				"BUILD_TESTING":            "OFF",
				"CMAKE_PREFIX_PATH":        strings.Join(prefixes, ";"),
				"LZ4_INCLUDE_DIR:PATH":     filepath.Join(lz4Path, "lib"),
				"LZ4_LIBRARY_RELEASE:PATH": filepath.Join(lz4Path, "bin", "liblz4.lib"),
			}
		},
	}, buildCfg, verbose, dry)
}

// BSADependencyNames lists the tasks bsa's CMake definitions read from.
// cmd/depforge uses it to register those tasks before bsa itself, so the
// default run order builds them first (SPEC_FULL.md §4.4). The closure's
// siblingSourcePath lookups read versions from the config and do not
// depend on registration.
func BSADependencyNames() []string {
	return []string{"binary_io", "directxtex", "mmio", "zlib", "lz4"}
}
