// Package metrics exposes engine activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.trai.ch/depcache/internal/core/ports"
)

const namespace = "depcache"

var _ ports.Metrics = (*Recorder)(nil)

// Recorder implements ports.Metrics on its own Prometheus registry.
type Recorder struct {
	registry *prometheus.Registry

	staleness         *prometheus.CounterVec
	signatureDuration prometheus.Histogram
	signatureErrors   prometheus.Counter
	commits           *prometheus.CounterVec
	committedOutputs  prometheus.Counter
}

// New creates a Recorder and registers its collectors.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		staleness: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "staleness_checks_total",
			Help:      "Freshness decisions by reason.",
		}, []string{"reason"}),
		signatureDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "signature_duration_seconds",
			Help:      "Time spent computing one output signature.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		signatureErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signature_errors_total",
			Help:      "Signature computations that failed.",
		}),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commits_total",
			Help:      "Graph commits by result.",
		}, []string{"result"}),
		committedOutputs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "committed_outputs_total",
			Help:      "Outputs written by successful commits.",
		}),
	}
	r.registry.MustRegister(r.staleness, r.signatureDuration, r.signatureErrors, r.commits, r.committedOutputs)
	return r
}

// ObserveStaleness counts one freshness decision.
func (r *Recorder) ObserveStaleness(reason ports.StalenessReason) {
	r.staleness.WithLabelValues(string(reason)).Inc()
}

// ObserveSignature records one signature computation.
func (r *Recorder) ObserveSignature(d time.Duration, err error) {
	if err != nil {
		r.signatureErrors.Inc()
		return
	}
	r.signatureDuration.Observe(d.Seconds())
}

// ObserveCommit records one commit of outputs.
func (r *Recorder) ObserveCommit(outputs int, err error) {
	if err != nil {
		r.commits.WithLabelValues("error").Inc()
		return
	}
	r.commits.WithLabelValues("ok").Inc()
	r.committedOutputs.Add(float64(outputs))
}

// Registry returns the registry holding the recorder's collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
