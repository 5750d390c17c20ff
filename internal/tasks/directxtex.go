package tasks

import "github.com/danmuck/depforge/internal/buildconf"

// NewDirectXTex builds the directxtex task, grounded on
// original_source/src/tasks/directxtex.cpp.
func NewDirectXTex(buildCfg buildconf.Config, verbose, dry bool) *Base {
	return NewBase(Spec{
		Name: "directxtex",
		ArchiveURL: func(version string) string {
			return "https://github.com/microsoft/DirectXTex/archive/refs/tags/" + version + ".zip"
		},
		CMakeDefs: func() map[string]string {
			return map[string]string{
				"BUILD_TOOLS":  "OFF",
				"BUILD_SAMPLE": "OFF",
			}
		},
	}, buildCfg, verbose, dry)
}
