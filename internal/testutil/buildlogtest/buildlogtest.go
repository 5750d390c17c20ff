// Package buildlogtest gives tests a private zerolog sink instead of
// routing through buildlog's process-wide, sync.Once-guarded Configure,
// grounded on the teacher's internal/testutil/testlog.Start pattern
// (configure once, log the test name, hand back a scoped logger).
package buildlogtest

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"

	"github.com/danmuck/depforge/internal/buildlog"
)

// Start configures a per-test zerolog logger writing into an in-memory
// buffer and returns a buildlog.RunContext wrapping it, plus the buffer so
// assertions can inspect emitted lines. Unlike buildlog.Configure, this
// never touches the process-wide singleton, so tests can run in parallel
// without fighting over global state.
func Start(t *testing.T) (buildlog.RunContext, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	log := zerolog.New(&buf).With().Str("component", t.Name()).Logger()
	log.Debug().Msgf("test=%s", t.Name())

	return buildlog.NewRunContext(log), &buf
}
