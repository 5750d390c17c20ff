package tasks

import "github.com/danmuck/depforge/internal/buildconf"

// NewZlib builds the zlib task. zlib ships no original_source/ file in
// this pack, so this follows the same CMake/MSBuild shape as binary_io and
// mmio (madler/zlib carries its own CMakeLists.txt) rather than the
// bespoke lz4 build.
func NewZlib(buildCfg buildconf.Config, verbose, dry bool) *Base {
	return NewBase(Spec{
		Name: "zlib",
		ArchiveURL: func(version string) string {
			return "https://github.com/madler/zlib/archive/refs/tags/" + version + ".zip"
		},
	}, buildCfg, verbose, dry)
}
