package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObservePlan(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObservePlan("active", 250*time.Millisecond)
	m.ObservePlan("active", 100*time.Millisecond)
	m.ObservePlan("failed", 10*time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.plansTotal.WithLabelValues("active")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.plansTotal.WithLabelValues("failed")))
}

func TestMetrics_ObserveCompletionError(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveCompletionError("rate_limit")
	m.ObserveCompletionError("rate_limit")
	m.ObserveCompletionError("network")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.completionErrors.WithLabelValues("rate_limit")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.completionErrors.WithLabelValues("network")))
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.ObservePlan("active", time.Second)
	m.ObserveCompletionError("unknown")
}
