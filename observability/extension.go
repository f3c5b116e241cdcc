// Package observability provides a metrics extension for Ledger that records
// lifecycle event counts through a pluggable MetricFactory.
package observability

import (
	"context"

	"github.com/reelgate/ledger/plan"
	"github.com/reelgate/ledger/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin            = (*MetricsExtension)(nil)
	_ plugin.OnInit            = (*MetricsExtension)(nil)
	_ plugin.OnSubscribed      = (*MetricsExtension)(nil)
	_ plugin.OnMovieAdded      = (*MetricsExtension)(nil)
	_ plugin.OnFundsWithdrawn  = (*MetricsExtension)(nil)
	_ plugin.OnPaymentRejected = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a Ledger plugin to automatically track subscription metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Subscription metrics
	Subscribed       Counter
	SubscribedBasic  Counter
	SubscribedStd    Counter
	SubscribedPrem   Counter
	PaymentsRejected Counter
	PaymentAmount    Histogram

	// Catalogue metrics
	MoviesAdded  Counter
	CataloguePos Histogram

	// Funds metrics
	Withdrawals     Counter
	WithdrawnAmount Histogram
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Subscription metrics
		Subscribed:       factory.Counter("ledger.subscription.purchased"),
		SubscribedBasic:  factory.Counter("ledger.subscription.purchased.basic"),
		SubscribedStd:    factory.Counter("ledger.subscription.purchased.standard"),
		SubscribedPrem:   factory.Counter("ledger.subscription.purchased.premium"),
		PaymentsRejected: factory.Counter("ledger.payment.rejected"),
		PaymentAmount:    factory.Histogram("ledger.payment.amount_wei"),

		// Catalogue metrics
		MoviesAdded:  factory.Counter("ledger.catalog.movies.added"),
		CataloguePos: factory.Histogram("ledger.catalog.position"),

		// Funds metrics
		Withdrawals:     factory.Counter("ledger.funds.withdrawals"),
		WithdrawnAmount: factory.Histogram("ledger.funds.withdrawn_wei"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// OnSubscribed implements plugin.OnSubscribed.
func (m *MetricsExtension) OnSubscribed(_ context.Context, ev plugin.SubscribedEvent) error {
	m.Subscribed.Inc()
	if c := m.planCounter(ev); c != nil {
		c.Inc()
	}
	m.PaymentAmount.Observe(float64(ev.Amount.Amount))
	return nil
}

// OnPaymentRejected implements plugin.OnPaymentRejected.
func (m *MetricsExtension) OnPaymentRejected(_ context.Context, _ plugin.PaymentRejectedEvent) error {
	m.PaymentsRejected.Inc()
	return nil
}

// OnMovieAdded implements plugin.OnMovieAdded.
func (m *MetricsExtension) OnMovieAdded(_ context.Context, ev plugin.MovieAddedEvent) error {
	m.MoviesAdded.Inc()
	m.CataloguePos.Observe(float64(ev.Position))
	return nil
}

// OnFundsWithdrawn implements plugin.OnFundsWithdrawn.
func (m *MetricsExtension) OnFundsWithdrawn(_ context.Context, ev plugin.FundsWithdrawnEvent) error {
	m.Withdrawals.Inc()
	m.WithdrawnAmount.Observe(float64(ev.Amount.Amount))
	return nil
}

func (m *MetricsExtension) planCounter(ev plugin.SubscribedEvent) Counter {
	switch ev.Plan {
	case plan.Basic:
		return m.SubscribedBasic
	case plan.Standard:
		return m.SubscribedStd
	case plan.Premium:
		return m.SubscribedPrem
	}
	return nil
}
