//go:build windows

package tools

import (
	"context"
	"fmt"

	"github.com/danmuck/depforge/internal/winproc"
)

// MSBuild builds (or cleans) a solution/project file, grounded on the
// create_msbuild_tool() factories in original_source/src/tasks/*.cpp. The
// INSTALL target doubles as "build and install", spec.md §4.6: "run the
// build tool in build mode (which includes install because the solution's
// install project is the target)."
type MSBuild struct {
	msbuildBin string
	op         Ops
	solution   string
	config     string
	verbose    bool
	dry        bool
}

// NewMSBuild constructs an MSBuild tool for solution, defaulting to
// OpBuild and the "Release" configuration.
func NewMSBuild(msbuildBin, solution string, op Ops, verbose, dry bool) *MSBuild {
	if op == "" {
		op = OpBuild
	}
	return &MSBuild{msbuildBin: msbuildBin, op: op, solution: solution, config: "Release", verbose: verbose, dry: dry}
}

// Config overrides the build configuration (default "Release").
func (m *MSBuild) Config(cfg string) *MSBuild {
	m.config = cfg
	return m
}

// Run implements Tool, returning the solution path it built or cleaned.
func (m *MSBuild) Run(ctx context.Context, cx Context) (any, error) {
	target := "Build"
	if m.op == OpClean {
		target = "Clean"
	}

	cx.Tracef("generic", "msbuild %s: %s (%s)", target, m.solution, m.config)

	spec := winproc.NewBuilder().
		Name("msbuild").
		Binary(m.msbuildBin).
		WithFlags(winproc.StdoutIsVerbose).
		SetVerboseHint(m.verbose).
		AddArg("", winproc.PathArg(m.solution), winproc.NoArgFlags).
		AddArg("/t:", winproc.StringArg(target), winproc.NoSpace).
		AddArg("/p:Configuration=", winproc.StringArg(m.config), winproc.NoSpace).
		AddArg("/m", winproc.StringArg(""), winproc.Quiet).
		Build(m.verbose)

	if _, err := runAndJoin(ctx, "msbuild", spec, m.dry); err != nil {
		return nil, fmt.Errorf("msbuild %s failed: %w", target, err)
	}
	return m.solution, nil
}
