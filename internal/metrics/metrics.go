// Package metrics records stage timings and solver job outcomes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cantilever"

// Metrics holds the collectors of one command invocation
type Metrics struct {
	Registry *prometheus.Registry

	StageDuration *prometheus.HistogramVec
	JobRuns       *prometheus.CounterVec
	JobDuration   prometheus.Histogram
}

// New registers the collectors on a private registry
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Time spent replaying each recipe stage against the session.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 10, 6),
		}, []string{"stage"}),
		JobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Solver job runs by final status.",
		}, []string{"status"}),
		JobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Wall time of the FEA application run, including the solver wait.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
	m.Registry.MustRegister(m.StageDuration, m.JobRuns, m.JobDuration)
	return m
}

// ObserveStage records one stage duration. Safe on a nil receiver.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveJob records a finished job run. Safe on a nil receiver.
func (m *Metrics) ObserveJob(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.JobRuns.WithLabelValues(status).Inc()
	m.JobDuration.Observe(d.Seconds())
}

// WriteTextfile dumps the registry in the Prometheus text format, suitable
// for the node exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
