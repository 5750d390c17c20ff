//go:build windows

package winproc

import (
	"strings"
	"testing"
)

func TestAddArgQuietDropsWithoutVerbose(t *testing.T) {
	spec := NewBuilder().
		Name("cmake").
		Binary("cmake").
		AddArg("-v", StringArg("1"), Quiet).
		Build(false)

	if strings.Contains(spec.Command(), "-v") {
		t.Fatalf("expected Quiet arg dropped, got %q", spec.Command())
	}
}

func TestAddArgQuietKeepsWithVerbose(t *testing.T) {
	spec := NewBuilder().
		Name("cmake").
		Binary("cmake").
		SetVerboseHint(true).
		AddArg("-v", StringArg("1"), Quiet).
		Build(true)

	if !strings.Contains(spec.Command(), "-v 1") {
		t.Fatalf("expected Quiet arg kept, got %q", spec.Command())
	}
}

func TestAddArgNoSpaceConcatenatesKeyAndValue(t *testing.T) {
	spec := NewBuilder().
		Name("cmake").
		Binary("cmake").
		AddArg("-DBUILD_TESTING=", StringArg("OFF"), NoSpace).
		Build(false)

	if !strings.Contains(spec.Command(), "-DBUILD_TESTING=OFF") {
		t.Fatalf("expected no-space concatenation, got %q", spec.Command())
	}
}

func TestAddArgNoSpaceImpliedByTrailingEquals(t *testing.T) {
	spec := NewBuilder().
		Name("cmake").
		Binary("cmake").
		AddArg("-D=", StringArg("x"), NoArgFlags).
		Build(false)

	if !strings.Contains(spec.Command(), "-D=x") {
		t.Fatalf("expected trailing '=' key to imply no-space, got %q", spec.Command())
	}
}

func TestAddArgEmptyKeyAppendsBareValue(t *testing.T) {
	spec := NewBuilder().
		Name("7z").
		Binary("7z").
		AddArg("", StringArg("x"), NoArgFlags).
		AddArg("", PathArg("C:\\archive.zip"), NoArgFlags).
		Build(false)

	want := `"7z" x "C:\archive.zip"`
	if spec.renderCmd(false) != want {
		t.Fatalf("renderCmd = %q, want %q", spec.renderCmd(false), want)
	}
}

func TestAddArgEmptyKeyAndValueIsNoop(t *testing.T) {
	spec := NewBuilder().
		Name("msbuild").
		Binary("msbuild").
		AddArg("", StringArg(""), NoArgFlags).
		Build(false)
	want := NewBuilder().Name("msbuild").Binary("msbuild").Build(false).Command()

	if spec.Command() != want {
		t.Fatalf("expected empty key/value to be a no-op: got %q, want %q", spec.Command(), want)
	}
}

func TestRenderCmdAppendsRedirectWhenStdoutVerboseAndQuiet(t *testing.T) {
	spec := NewBuilder().
		Name("cmake").
		Binary("cmake").
		WithFlags(StdoutIsVerbose).
		Build(false)

	if !strings.HasSuffix(spec.renderCmd(false), "> NUL") {
		t.Fatalf("expected NUL redirect when not verbose, got %q", spec.renderCmd(false))
	}
	if strings.Contains(spec.renderCmd(true), "> NUL") {
		t.Fatalf("expected no redirect when verbose, got %q", spec.renderCmd(true))
	}
}

func TestRawBuilderReturnsCmdVerbatim(t *testing.T) {
	spec := Raw("dir /b").Build(false)
	if spec.renderCmd(false) != "dir /b" {
		t.Fatalf("renderCmd = %q, want raw passthrough", spec.renderCmd(false))
	}
}

func TestPipeJoinsTwoSpecsWithPipeOperator(t *testing.T) {
	a := NewBuilder().Binary("7z").AddArg("", StringArg("x"), NoArgFlags).Build(false)
	b := NewBuilder().Binary("7z").AddArg("", StringArg("-si"), NoArgFlags).Build(false)

	piped := Pipe(a, b)
	if !strings.Contains(piped.Command(), " | ") {
		t.Fatalf("expected piped command to contain ' | ', got %q", piped.Command())
	}
}

func TestPathArgAlwaysQuoted(t *testing.T) {
	if got := PathArg(`C:\no spaces`).render(false); got != `"C:\no spaces"` {
		t.Fatalf("PathArg.render(false) = %q, want quoted form", got)
	}
}

func TestQuotedArgIgnoresForceQuoteHint(t *testing.T) {
	if got := QuotedArg("x").render(false); got != `"x"` {
		t.Fatalf("QuotedArg.render(false) = %q, want quoted form", got)
	}
}
