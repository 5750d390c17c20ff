// Package tools defines the uniform "runnable tool" contract tasks consume
// (spec.md §4.5, C5) and the concrete tools a dependency build actually
// shells out to: a downloader, an archive extractor, and CMake/MSBuild
// wrappers built on internal/winproc. The shape mirrors the teacher's
// seeds.Seed interface (internal/seeds/types.go: Metadata/Operations/
// Execute) generalized from "service seed" to "build tool".
package tools

import "context"

// Ops selects a tool's mode of operation, spec.md §4.5's "generate/build/
// clean/redownload/reextract/etc" per-tool op set.
type Ops string

const (
	OpGenerate   Ops = "generate"
	OpBuild      Ops = "build"
	OpClean      Ops = "clean"
	OpDownload   Ops = "download"
	OpRedownload Ops = "redownload"
	OpExtract    Ops = "extract"
	OpReextract  Ops = "reextract"
)

// Context is the logging/tracing collaborator passed down to a running
// tool, spec.md §6's "To logging/context" contract.
type Context interface {
	Tracef(category string, format string, args ...any)
	Debugf(format string, args ...any)
}

// Tool is any object exposing Run(ctx) -> (result, error). Concrete tools
// embed their target (solution, source path, URL) and ops mode via their
// own constructors rather than through this interface, matching spec.md
// §4.5: "an object with an ops mode... and a run() operation that returns
// a tool-specific result."
type Tool interface {
	Run(ctx context.Context, cx Context) (any, error)
}

// RunTool is the single helper tasks use to consume a tool, spec.md §4.5's
// run_tool(tool): invokes the tool, passing the task's context, and
// returns the tool's result type via a type assertion at the call site.
func RunTool(ctx context.Context, cx Context, t Tool) (any, error) {
	return t.Run(ctx, cx)
}
