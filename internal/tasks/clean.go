package tasks

import (
	"fmt"
	"strings"
)

// Clean is a bitset over which lifecycle stages a task should rewind
// before re-running, spec.md §4.6's "clean" parameter: redownload,
// reextract, reconfigure, rebuild. Grounded on every task's do_clean(clean
// c) in original_source/src/tasks/*.cpp, all four bits checked in the same
// order.
type Clean uint32

const (
	CleanNone Clean = 0

	Redownload Clean = 1 << iota
	Reextract
	Reconfigure
	Rebuild

	CleanAll = Redownload | Reextract | Reconfigure | Rebuild
)

var cleanNames = map[string]Clean{
	"redownload":  Redownload,
	"reextract":   Reextract,
	"reconfigure": Reconfigure,
	"rebuild":     Rebuild,
	"all":         CleanAll,
}

// Has reports whether c includes bit.
func (c Clean) Has(bit Clean) bool {
	return c&bit != 0
}

func (c Clean) String() string {
	if c == CleanNone {
		return "none"
	}
	var parts []string
	for _, name := range []string{"redownload", "reextract", "reconfigure", "rebuild"} {
		if c.Has(cleanNames[name]) {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ",")
}

// ParseClean parses a comma-separated list of clean stage names (or "all")
// into a Clean bitset, the CLI's -clean flag value, SPEC_FULL.md §2.5.
func ParseClean(raw string) (Clean, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return CleanNone, nil
	}
	var c Clean
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		bit, ok := cleanNames[tok]
		if !ok {
			return CleanNone, fmt.Errorf("tasks: unknown clean stage %q", tok)
		}
		c |= bit
	}
	return c, nil
}
