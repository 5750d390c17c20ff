//go:build windows

package winproc

import (
	"fmt"
	"strings"
)

// Flags is a bitset over Spec-level behavior switches, spec.md §3's
// "bitset over allow_failure, stdout_is_verbose, plus user-extensible
// slots".
type Flags uint32

const (
	NoFlags Flags = 0

	// AllowFailure marks a non-zero exit code as not fatal.
	AllowFailure Flags = 1 << iota

	// StdoutIsVerbose redirects stdout to NUL when verbose mode is off.
	StdoutIsVerbose
)

// ArgFlags controls how a single add_arg call renders, spec.md §4.3.
type ArgFlags uint32

const (
	NoArgFlags ArgFlags = 0

	// Quiet drops the argument unless verbose mode is on. This is the
	// spec.md table's stated intent, not the original C++ source's
	// literal (inverted) branch — see DESIGN.md's "quiet flag" entry.
	Quiet ArgFlags = 1 << iota

	// NoSpace concatenates key and value with no separator. Implied
	// automatically when the key ends in "=".
	NoSpace
)

// Builder accumulates a command's configuration and finalizes into an
// immutable Spec. Spec.md §9's design note picks this over "owning setters
// returning self by value" so Task code can't accidentally keep mutating a
// Spec after it's been handed to a Runner.
type Builder struct {
	spec Spec
	raw  string
}

// Spec is the immutable, fully-configured description of one command to
// run. A Runner only ever consumes a Spec.
type Spec struct {
	Name    string
	Binary  string
	Cwd     string
	Flags   Flags
	Env     []string
	args    string
	cmdline string
	raw     string

	verboseForQuiet bool
}

// NewBuilder starts a fresh command under construction.
func NewBuilder() *Builder {
	return &Builder{}
}

// Raw starts a builder whose Build() renders cmd verbatim, spec.md
// §4.3's process::raw() constructor.
func Raw(cmd string) *Builder {
	return &Builder{raw: cmd}
}

func (b *Builder) Name(name string) *Builder {
	b.spec.Name = name
	return b
}

func (b *Builder) Binary(path string) *Builder {
	b.spec.Binary = path
	return b
}

func (b *Builder) Cwd(path string) *Builder {
	b.spec.Cwd = path
	return b
}

func (b *Builder) WithFlags(f Flags) *Builder {
	b.spec.Flags = f
	return b
}

func (b *Builder) Env(env []string) *Builder {
	b.spec.Env = env
	return b
}

// Arg renders value (force-quoted per ArgValue's type, not by default) and
// appends it via AddArg with an empty key.
func (b *Builder) Arg(value ArgValue) *Builder {
	return b.AddArg("", value, NoArgFlags)
}

// AddArg implements spec.md §4.3's add_arg(key, value, arg_flags) rules.
func (b *Builder) AddArg(key string, value ArgValue, flags ArgFlags) *Builder {
	if flags&Quiet != 0 && !verboseHint(b) {
		return b
	}

	v := value.render(false)
	if key == "" && v == "" {
		return b
	}

	if key == "" {
		b.spec.args += " " + v
		return b
	}

	noSpace := flags&NoSpace != 0 || strings.HasSuffix(key, "=")
	if noSpace {
		b.spec.args += " " + key + v
	} else {
		b.spec.args += " " + key + " " + v
	}
	return b
}

// verboseHint lets a Builder resolve Quiet without threading a global: a
// Builder not told about verbose mode treats Quiet as "drop", matching the
// conservative default (a build running with no configuration context
// should default to terse output). Callers that care call SetVerboseHint.
func verboseHint(b *Builder) bool {
	return b.spec.verboseForQuiet
}

// SetVerboseHint records whether verbose mode is active so later Quiet
// AddArg calls resolve correctly. Tasks call this once, right after
// NewBuilder(), from the buildconf.Config they were given — keeping the
// core free of a package-level global per spec.md §9.
func (b *Builder) SetVerboseHint(verbose bool) *Builder {
	b.spec.verboseForQuiet = verbose
	return b
}

// Build finalizes the builder into a Spec, rendering make_cmd() eagerly so
// a Runner never re-derives it.
func (b *Builder) Build(verbose bool) Spec {
	spec := b.spec
	spec.raw = b.raw
	spec.cmdline = spec.renderCmd(verbose)
	return spec
}

// renderCmd implements spec.md §4.3's make_cmd().
func (s Spec) renderCmd(verbose bool) string {
	if s.raw != "" {
		return s.raw
	}
	cmd := fmt.Sprintf(`"%s" %s`, s.Binary, strings.TrimPrefix(s.args, " "))
	if s.Flags&StdoutIsVerbose != 0 && !verbose {
		cmd += " > NUL"
	}
	return cmd
}

// Command returns the fully rendered command line.
func (s Spec) Command() string {
	return s.cmdline
}

// Pipe composes two specs into one raw "a | b" command, spec.md §4.3's
// pipe_into and the supplemented tar.gz extraction pipeline (SPEC_FULL.md
// §4.1).
func Pipe(a, b Spec) Spec {
	return Spec{
		Name:    a.Name,
		cmdline: a.cmdline + " | " + b.cmdline,
		raw:     a.cmdline + " | " + b.cmdline,
	}
}

// ArgValue renders an argument token, spec.md §4.3's arg_to_string.
type ArgValue interface {
	render(forceQuote bool) string
}

// StringArg is a plain string argument, quoted only when forced.
type StringArg string

func (s StringArg) render(forceQuote bool) string {
	if forceQuote {
		return `"` + string(s) + `"`
	}
	return string(s)
}

// QuotedArg always renders with force-quote regardless of the caller's
// intent — used for the one-off "force_quote=true" call sites.
type QuotedArg string

func (s QuotedArg) render(bool) string {
	return `"` + string(s) + `"`
}

// PathArg always renders double-quoted, spec.md §4.3: "Paths are always
// wrapped in double quotes."
type PathArg string

func (p PathArg) render(bool) string {
	return `"` + string(p) + `"`
}

// URLArg renders its string form, optionally quoted.
type URLArg string

func (u URLArg) render(forceQuote bool) string {
	if forceQuote {
		return `"` + string(u) + `"`
	}
	return string(u)
}
