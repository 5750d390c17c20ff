package buildlog

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics mirrors the shape of the teacher's internal/observability/metrics.go:
// a handful of counters/histograms registered once behind a sync.Once,
// updated from call sites, never itself served over HTTP here (depforge is
// a CLI, not a service — see SPEC_FULL.md §2.4).
var (
	registerOnce sync.Once

	TaskDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "depforge",
			Subsystem: "task",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration of a task lifecycle stage.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"task", "stage"},
	)

	ProcessExits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "depforge",
			Subsystem: "process",
			Name:      "exit_total",
			Help:      "Spawned child process exits, by tool and exit code.",
		},
		[]string{"tool", "code"},
	)

	PipeReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "depforge",
			Subsystem: "pipe",
			Name:      "reads_total",
			Help:      "Async pipe read() calls, by stream and outcome.",
		},
		[]string{"stream", "outcome"},
	)
)

// RegisterMetrics registers the package's collectors with the default
// registry. Idempotent.
func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(TaskDuration, ProcessExits, PipeReads)
	})
}
