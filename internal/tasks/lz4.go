package tasks

import (
	"path/filepath"

	"github.com/danmuck/depforge/internal/buildconf"
)

// LZ4 builds lz4 directly from the Visual Studio solution it ships under
// build/VS2017, skipping the cmake step every other task in this package
// uses. bsa.cpp's create_cmake_tool() reaches into lz4::source_path()/
// "lib" and lz4::source_path()/"bin"/"liblz4.lib" for its
// LZ4_INCLUDE_DIR/LZ4_LIBRARY_RELEASE defs, which only lines up with a
// solution build, not a generated cmake tree — lz4 carries no
// CMakeLists.txt upstream. No original_source/ file exists for lz4; this
// is extrapolated from that reference and documented in DESIGN.md.
//
// Its lifecycle methods (Clean/Fetch/BuildAndInstall, in lz4_windows.go)
// are the only part of this type that actually spawns a process; the
// fields and accessors here are plain path composition.
type LZ4 struct {
	buildCfg buildconf.Config
	verbose  bool
	dry      bool
}

// NewLZ4 builds the lz4 task.
func NewLZ4(buildCfg buildconf.Config, verbose, dry bool) *LZ4 {
	return &LZ4{buildCfg: buildCfg, verbose: verbose, dry: dry}
}

func (l *LZ4) Name() string { return "lz4" }

func (l *LZ4) Version() string { return l.buildCfg.Version("lz4") }

func (l *LZ4) SourcePath() string {
	return filepath.Join(l.buildCfg.BuildRoot, "lz4-"+l.Version())
}

func (l *LZ4) Prebuilt() bool { return false }

func (l *LZ4) archiveURL() string {
	return "https://github.com/lz4/lz4/archive/refs/tags/" + l.Version() + ".zip"
}

func (l *LZ4) downloadsDir() string {
	return filepath.Join(l.buildCfg.BuildRoot, "downloads")
}

func (l *LZ4) solutionPath() string {
	return filepath.Join(l.SourcePath(), "build", "VS2017", "lz4.sln")
}
