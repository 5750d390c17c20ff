package tasks

import "github.com/danmuck/depforge/internal/buildconf"

// NewBinaryIO builds the binary_io task, grounded on
// original_source/src/tasks/binary_io.cpp: a GitHub release zip, CMake
// with BUILD_TESTING off, then msbuild.
func NewBinaryIO(buildCfg buildconf.Config, verbose, dry bool) *Base {
	return NewBase(Spec{
		Name: "binary_io",
		ArchiveURL: func(version string) string {
			return "https://github.com/Ryan-rsm-McKenzie/binary_io/archive/refs/tags/" + version + ".zip"
		},
		CMakeDefs: func() map[string]string {
			return map[string]string{"BUILD_TESTING": "OFF"}
		},
	}, buildCfg, verbose, dry)
}
