// Package buildlog wires structured, colorized logging for the build
// orchestrator on top of zerolog, the way the teacher assembles its logger
// from zerolog plus go-colorable/go-isatty rather than the standard log
// package.
package buildlog

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Category tags a trace call the way spec.md's context.trace(category, ...)
// does. Values mirror the C++ source's context::* constants used in
// do_clean/extractor call sites (reextract, generic, bypass, fs, ...).
type Category string

const (
	CategoryGeneric   Category = "generic"
	CategoryReextract Category = "reextract"
	CategoryBypass    Category = "bypass"
	CategoryFS        Category = "fs"
	CategoryProcess   Category = "process"
	CategoryTool      Category = "tool"
)

var (
	configureOnce sync.Once
	base          zerolog.Logger
)

// Configure sets the process-wide zerolog level and output writer once.
// Safe to call multiple times; only the first call takes effect, matching
// the teacher's logging.Configure(profile) sync.Once guard.
func Configure(verbose bool, noColor bool) {
	configureOnce.Do(func() {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)

		out := os.Stdout
		useColor := !noColor && isatty.IsTerminal(out.Fd())

		var writer zerolog.ConsoleWriter
		if useColor {
			writer = zerolog.ConsoleWriter{Out: colorable.NewColorable(out), TimeFormat: time.RFC3339}
		} else {
			writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
		}

		base = zerolog.New(writer).With().Timestamp().Logger()
	})
}

// New returns a component-scoped logger. Configure must have run first;
// callers that skip it get zerolog's silent zero value, which is a
// programmer error worth surfacing loudly in tests rather than papering
// over with an implicit Configure call here.
func New(component string) zerolog.Logger {
	return base.With().Str("component", component).Logger()
}

// Trace emits a structured diagnostic tagged with a category, matching
// spec.md §6's context.trace(category, format, args...) contract.
func Trace(log zerolog.Logger, cat Category, msg string) {
	log.Debug().Str("category", string(cat)).Msg(msg)
}

// Tracef is Trace with fmt-style formatting.
func Tracef(log zerolog.Logger, cat Category, format string, args ...any) {
	log.Debug().Str("category", string(cat)).Msgf(format, args...)
}

// FatalError is the sentinel returned by BailOut/BailOutErrno. It carries
// the OS error, if any, so callers can inspect it without string-matching
// the message the way the C++ bail_out(msg, os_error) overload preserves
// the numeric code.
type FatalError struct {
	Msg   string
	Errno error
}

func (e *FatalError) Error() string {
	if e.Errno == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Errno.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Errno
}

// BailOut builds a FatalError with no underlying OS error, spec.md's
// bail_out(msg) form.
func BailOut(msg string) error {
	return &FatalError{Msg: msg}
}

// BailOutErrno builds a FatalError wrapping an OS error, spec.md's
// bail_out(msg, os_error) form.
func BailOutErrno(msg string, errno error) error {
	return &FatalError{Msg: msg, Errno: errno}
}

// ParseCategories is a small convenience that turns a comma-separated
// flag value into a set, mirroring the teacher's habit of
// keeping flag parsing next to the thing it configures.
func ParseCategories(raw string) map[Category]bool {
	out := make(map[Category]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out[Category(part)] = true
	}
	return out
}
