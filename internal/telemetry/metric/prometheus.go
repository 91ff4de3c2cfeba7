// Package metric provides Prometheus metrics for Texter.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	// Autosave metrics
	AutosaveCycles    prometheus.Counter
	AutosaveWrites    prometheus.Counter
	AutosaveFailures  prometheus.Counter
	AutosaveCycleSecs prometheus.Histogram

	// Document metrics
	DocumentsOpen      prometheus.Gauge
	DocumentsRecovered prometheus.Counter

	// Snapshot metrics
	SnapshotBytes prometheus.Gauge

	// Recovery metrics
	RecoveryCandidates prometheus.Gauge

	reg *prometheus.Registry
}

// NewRegistry creates a registry with all editor metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		AutosaveCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "texter",
			Subsystem: "autosave",
			Name:      "cycles_total",
			Help:      "Completed autosave cycles.",
		}),
		AutosaveWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "texter",
			Subsystem: "autosave",
			Name:      "writes_total",
			Help:      "Snapshot pairs written successfully.",
		}),
		AutosaveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "texter",
			Subsystem: "autosave",
			Name:      "failures_total",
			Help:      "Per-document snapshot write failures, suppressed from the UI.",
		}),
		AutosaveCycleSecs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "texter",
			Subsystem: "autosave",
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of one autosave cycle.",
			Buckets:   prometheus.DefBuckets,
		}),
		DocumentsOpen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "texter",
			Subsystem: "documents",
			Name:      "open",
			Help:      "Documents currently open.",
		}),
		DocumentsRecovered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "texter",
			Subsystem: "documents",
			Name:      "recovered_total",
			Help:      "Documents reconstituted from orphan snapshots.",
		}),
		SnapshotBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "texter",
			Subsystem: "snapshot",
			Name:      "bytes",
			Help:      "Bytes written by the most recent autosave cycle.",
		}),
		RecoveryCandidates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "texter",
			Subsystem: "recovery",
			Name:      "candidates",
			Help:      "Orphan snapshot pairs found by the startup scan.",
		}),
		reg: reg,
	}

	reg.MustRegister(
		r.AutosaveCycles,
		r.AutosaveWrites,
		r.AutosaveFailures,
		r.AutosaveCycleSecs,
		r.DocumentsOpen,
		r.DocumentsRecovered,
		r.SnapshotBytes,
		r.RecoveryCandidates,
	)

	return r
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
