package telemetry

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

var ModelVariablesTotal = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "roster_scheduler",
		Subsystem: "model",
		Name:      "variables_total",
		Help:      "Number of decision variables built for a block.",
	},
	[]string{"block"},
)

var ModelConstraintsTotal = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: "roster_scheduler",
		Subsystem: "model",
		Name:      "constraints_total",
		Help:      "Number of constraints built for a block.",
	},
	[]string{"block"},
)

var SolveDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "roster_scheduler",
		Subsystem: "solver",
		Name:      "solve_duration_seconds",
		Help:      "Wall-clock time spent solving one block.",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	},
	[]string{"status"},
)

var BlocksSolvedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "roster_scheduler",
		Subsystem: "solver",
		Name:      "blocks_solved_total",
		Help:      "Total number of blocks solved, by outcome.",
	},
	[]string{"status"},
)

var RunDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "roster_scheduler",
		Subsystem: "run",
		Name:      "duration_seconds",
		Help:      "Wall-clock time spent on a whole generate run.",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
	},
)

// All returns every roster-scheduler metric for registration.
func All() []prometheus.Collector {
	return []prometheus.Collector{
		ModelVariablesTotal,
		ModelConstraintsTotal,
		SolveDuration,
		BlocksSolvedTotal,
		RunDuration,
	}
}

// registry holds every roster-scheduler metric, independent of any global
// Prometheus registry: the CLI is one-shot and has no /metrics HTTP
// endpoint to scrape, so it owns its collectors directly and dumps them as
// text at the end of a run instead.
var registry = newRegistry()

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(All()...)
	return reg
}

// WriteMetrics writes every collected metric in the Prometheus text
// exposition format to w, for callers that want a snapshot of one run
// (e.g. written alongside the schedule CSV and iCal outputs).
func WriteMetrics(w io.Writer) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
