package buildlog

import "github.com/rs/zerolog"

// RunContext adapts a component-scoped zerolog.Logger to the
// tools.Context/tasks' logging contract (Tracef/Debugf), so every Tool and
// Task gets structured, categorized output without importing zerolog
// themselves.
type RunContext struct {
	log zerolog.Logger
}

// NewRunContext wraps a logger for one component (e.g. a task name).
func NewRunContext(log zerolog.Logger) RunContext {
	return RunContext{log: log}
}

// Tracef implements the category-tagged trace call every Tool/Task uses.
func (c RunContext) Tracef(category string, format string, args ...any) {
	Tracef(c.log, Category(category), format, args...)
}

// Debugf implements the plain debug call used for resumption/bypass notes
// that don't carry a specific category.
func (c RunContext) Debugf(format string, args ...any) {
	c.log.Debug().Msgf(format, args...)
}
