package observability

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusFactory is a MetricFactory backed by a prometheus.Registerer.
// Metric names are normalized from dotted form ("ledger.payment.amount_wei")
// to the underscore form Prometheus expects.
type PrometheusFactory struct {
	registerer prometheus.Registerer
}

var _ MetricFactory = (*PrometheusFactory)(nil)

// NewPrometheusFactory creates a factory registering metrics with reg.
// Pass prometheus.DefaultRegisterer to use the process-wide registry.
func NewPrometheusFactory(reg prometheus.Registerer) *PrometheusFactory {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &PrometheusFactory{registerer: reg}
}

// Counter implements MetricFactory.
func (f *PrometheusFactory) Counter(name string) Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: promName(name) + "_total",
	})
	f.registerer.MustRegister(c)
	return c
}

// Histogram implements MetricFactory.
func (f *PrometheusFactory) Histogram(name string) Histogram {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    promName(name),
		// Observed values span catalogue positions up to wei amounts.
		Buckets: prometheus.ExponentialBuckets(1, 10, 19),
	})
	f.registerer.MustRegister(h)
	return h
}

func promName(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}
