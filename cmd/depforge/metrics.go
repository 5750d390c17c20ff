//go:build windows

package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// dumpMetrics writes every registered collector to stdout in Prometheus
// text exposition format, SPEC_FULL.md §2.4: depforge is a CLI with no
// server, so -metrics is a one-shot dump rather than an HTTP endpoint.
func dumpMetrics() error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(os.Stdout, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
