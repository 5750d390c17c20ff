package tasks

import "github.com/danmuck/depforge/internal/buildconf"

// NewMMIO builds the mmio task, grounded on
// original_source/src/tasks/mmio.cpp.
func NewMMIO(buildCfg buildconf.Config, verbose, dry bool) *Base {
	return NewBase(Spec{
		Name: "mmio",
		ArchiveURL: func(version string) string {
			return "https://github.com/Ryan-rsm-McKenzie/mmio/archive/refs/tags/" + version + ".zip"
		},
		CMakeDefs: func() map[string]string {
			return map[string]string{"BUILD_TESTING": "OFF"}
		},
	}, buildCfg, verbose, dry)
}
