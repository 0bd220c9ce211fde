package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// advisory engine.
type Metrics struct {
	EvaluationsTotal   prometheus.Counter
	SwapsFlagged       prometheus.Counter
	EvaluationDuration prometheus.Histogram
	EngineReady        prometheus.Gauge

	// Collaborator degradation metrics.
	CollaboratorFallbacks *prometheus.CounterVec // label: source={market,climate,geocoder,status}
	AdvisoriesPublished   prometheus.Counter
	PublishErrors         prometheus.Counter
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		EvaluationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crop_advisor",
			Name:      "evaluations_total",
			Help:      "Total recommendation evaluations performed.",
		}),
		SwapsFlagged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crop_advisor",
			Name:      "smart_swaps_flagged_total",
			Help:      "Total candidates flagged as smart swaps.",
		}),
		EvaluationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "crop_advisor",
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of a complete farm evaluation.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		EngineReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "crop_advisor",
			Name:      "engine_ready",
			Help:      "1 when the engine has completed at least one evaluation.",
		}),
		CollaboratorFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "crop_advisor",
			Name:      "collaborator_fallbacks_total",
			Help:      "Times an external collaborator failed and a static fallback answered.",
		}, []string{"source"}),
		AdvisoriesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crop_advisor",
			Name:      "advisories_published_total",
			Help:      "Advisory events published to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "crop_advisor",
			Name:      "advisory_publish_errors_total",
			Help:      "Failed advisory event publishes.",
		}),
	}

	prometheus.MustRegister(
		m.EvaluationsTotal,
		m.SwapsFlagged,
		m.EvaluationDuration,
		m.EngineReady,
		m.CollaboratorFallbacks,
		m.AdvisoriesPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		EvaluationsTotal:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "crop_advisor", Name: "evaluations_total"}),
		SwapsFlagged:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "crop_advisor", Name: "smart_swaps_flagged_total"}),
		EvaluationDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "crop_advisor", Name: "evaluation_duration_seconds"}),
		EngineReady:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "crop_advisor", Name: "engine_ready"}),
		CollaboratorFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "crop_advisor", Name: "collaborator_fallbacks_total"}, []string{"source"}),
		AdvisoriesPublished:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "crop_advisor", Name: "advisories_published_total"}),
		PublishErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "crop_advisor", Name: "advisory_publish_errors_total"}),
	}
}
