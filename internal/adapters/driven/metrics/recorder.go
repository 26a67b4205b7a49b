package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/cascade/internal/core/domain"
	"github.com/custodia-labs/cascade/internal/core/ports/driven"
)

// Namespace prefixes every metric name.
const Namespace = "cascade"

// Invocation results.
const (
	resultSucceeded  = "succeeded"
	resultIncomplete = "incomplete"
	resultSkipped    = "skipped"
)

// Ensure PrometheusRecorder implements the interface.
var _ driven.OutcomeRecorder = (*PrometheusRecorder)(nil)

// PrometheusRecorder exports cleanup outcomes as Prometheus metrics.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	invocations    *prometheus.CounterVec
	steps          *prometheus.CounterVec
	recordsDeleted prometheus.Counter
	batches        prometheus.Counter
	duration       prometheus.Histogram
}

// NewPrometheusRecorder registers the cleanup metrics on registry.
// If registry is nil a private registry is created.
func NewPrometheusRecorder(registry *prometheus.Registry) *PrometheusRecorder {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	r := &PrometheusRecorder{
		registry: registry,
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "invocations_total",
			Help:      "Deletion events handled, by result.",
		}, []string{"result"}),
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "steps_total",
			Help:      "Cleanup steps, by lane and status.",
		}, []string{"lane", "status"}),
		recordsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "records_deleted_total",
			Help:      "Dependent records removed in committed batches.",
		}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "batches_committed_total",
			Help:      "Atomic delete batches committed.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "invocation_duration_seconds",
			Help:      "Wall time of a cleanup invocation.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
	}

	registry.MustRegister(r.invocations, r.steps, r.recordsDeleted, r.batches, r.duration)
	return r
}

// RecordOutcome updates the metrics for one invocation.
func (r *PrometheusRecorder) RecordOutcome(outcome *domain.CleanupOutcome) {
	if outcome == nil {
		return
	}

	switch {
	case outcome.Skipped:
		r.invocations.WithLabelValues(resultSkipped).Inc()
		return
	case outcome.Succeeded():
		r.invocations.WithLabelValues(resultSucceeded).Inc()
	default:
		r.invocations.WithLabelValues(resultIncomplete).Inc()
	}

	for _, result := range outcome.Results {
		r.steps.WithLabelValues(string(result.Lane), string(result.Status)).Inc()
	}
	r.recordsDeleted.Add(float64(outcome.RecordsDeleted))
	r.batches.Add(float64(outcome.BatchesCommitted))
	r.duration.Observe(outcome.Duration.Seconds())
}

// Registry returns the registry the metrics are registered on.
func (r *PrometheusRecorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler returns an HTTP handler exposing the registry.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
