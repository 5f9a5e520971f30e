package observability

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)

var (
	registerOnce sync.Once
	registry     = prometheus.NewRegistry()

	operationRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "transcodectl",
			Subsystem: "operation",
			Name:      "runs_total",
			Help:      "Operation invocations by outcome.",
		},
		[]string{"operation", "outcome"},
	)
	operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "transcodectl",
			Subsystem: "operation",
			Name:      "duration_seconds",
			Help:      "Wall time of one external tool invocation.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"operation"},
	)
	unknownOperations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "transcodectl",
			Subsystem: "operation",
			Name:      "unknown_total",
			Help:      "Requested operation names that matched nothing.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		registry.MustRegister(operationRuns, operationDuration, unknownOperations)
	})
}

// Registry exposes the gatherer holding every transcodectl metric.
func Registry() *prometheus.Registry {
	RegisterMetrics()
	return registry
}

func RecordOperation(operation string, success bool, duration time.Duration) {
	RegisterMetrics()
	outcome := OutcomeFailed
	if success {
		outcome = OutcomeSucceeded
	}
	operationRuns.WithLabelValues(operation, outcome).Inc()
	operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func RecordUnknownOperation() {
	RegisterMetrics()
	unknownOperations.Inc()
}

// WriteTextfile dumps all metrics in text exposition format for the
// node_exporter textfile collector. The file is replaced atomically.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry()); err != nil {
		return fmt.Errorf("write metrics textfile %q: %w", path, err)
	}
	return nil
}
