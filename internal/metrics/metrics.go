// Package metrics instruments plan generation with Prometheus metrics,
// exposed on the HTTP sidecar's /metrics endpoint.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all plan-generation metrics.
type Metrics struct {
	plansTotal       *prometheus.CounterVec
	planDuration     prometheus.Histogram
	completionErrors *prometheus.CounterVec
}

// New creates the metric set and registers it on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		plansTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plannerd",
			Name:      "plans_total",
			Help:      "Plans generated, by terminal status.",
		}, []string{"status"}),
		planDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "plannerd",
			Name:      "plan_duration_seconds",
			Help:      "End-to-end plan generation duration.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		completionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "plannerd",
			Name:      "completion_errors_total",
			Help:      "Classified completion failures, by kind.",
		}, []string{"kind"}),
	}
	reg.MustRegister(m.plansTotal, m.planDuration, m.completionErrors)
	return m
}

// ObservePlan records one finished plan generation.
func (m *Metrics) ObservePlan(status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.plansTotal.WithLabelValues(status).Inc()
	m.planDuration.Observe(duration.Seconds())
}

// ObserveCompletionError records a classified completion failure.
func (m *Metrics) ObserveCompletionError(kind string) {
	if m == nil {
		return
	}
	m.completionErrors.WithLabelValues(kind).Inc()
}
