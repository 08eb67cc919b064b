// Package observability provides a metrics extension that records
// engine lifecycle event counts via an injected MetricFactory.
package observability

import (
	"context"

	"github.com/towertech/societyops/plugin"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin              = (*MetricsExtension)(nil)
	_ plugin.OnInit              = (*MetricsExtension)(nil)
	_ plugin.OnFlatRegistered    = (*MetricsExtension)(nil)
	_ plugin.OnBillGenerated     = (*MetricsExtension)(nil)
	_ plugin.OnPaymentRecorded   = (*MetricsExtension)(nil)
	_ plugin.OnBookingCreated    = (*MetricsExtension)(nil)
	_ plugin.OnVisitorCheckedIn  = (*MetricsExtension)(nil)
	_ plugin.OnVisitorCheckedOut = (*MetricsExtension)(nil)
	_ plugin.OnComplaintRaised   = (*MetricsExtension)(nil)
	_ plugin.OnComplaintAdvanced = (*MetricsExtension)(nil)
	_ plugin.OnBroadcastCreated  = (*MetricsExtension)(nil)
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
// Register it as an engine plugin to automatically track operations metrics.
type MetricsExtension struct {
	factory MetricFactory

	// Flat metrics
	FlatsRegistered Counter

	// Billing metrics
	BillsGenerated   Counter
	PaymentsRecorded Counter

	// Booking metrics
	BookingsCreated Counter

	// Visitor metrics
	VisitorCheckIns  Counter
	VisitorCheckOuts Counter

	// Complaint metrics
	ComplaintsRaised   Counter
	ComplaintsAdvanced Counter

	// Broadcast metrics
	BroadcastsCreated Counter

	// Error metrics
	StoreErrors  Counter
	PluginErrors Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		// Flat metrics
		FlatsRegistered: factory.Counter("societyops.flat.registered"),

		// Billing metrics
		BillsGenerated:   factory.Counter("societyops.bill.generated"),
		PaymentsRecorded: factory.Counter("societyops.payment.recorded"),

		// Booking metrics
		BookingsCreated: factory.Counter("societyops.booking.created"),

		// Visitor metrics
		VisitorCheckIns:  factory.Counter("societyops.visitor.check_ins"),
		VisitorCheckOuts: factory.Counter("societyops.visitor.check_outs"),

		// Complaint metrics
		ComplaintsRaised:   factory.Counter("societyops.complaint.raised"),
		ComplaintsAdvanced: factory.Counter("societyops.complaint.advanced"),

		// Broadcast metrics
		BroadcastsCreated: factory.Counter("societyops.broadcast.created"),

		// Error metrics
		StoreErrors:  factory.Counter("societyops.store.errors"),
		PluginErrors: factory.Counter("societyops.plugin.errors"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Flat registry hooks
// ──────────────────────────────────────────────────

// OnFlatRegistered implements plugin.OnFlatRegistered.
func (m *MetricsExtension) OnFlatRegistered(_ context.Context, _ interface{}) error {
	m.FlatsRegistered.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Billing hooks
// ──────────────────────────────────────────────────

// OnBillGenerated implements plugin.OnBillGenerated.
func (m *MetricsExtension) OnBillGenerated(_ context.Context, _ interface{}) error {
	m.BillsGenerated.Inc()
	return nil
}

// OnPaymentRecorded implements plugin.OnPaymentRecorded.
func (m *MetricsExtension) OnPaymentRecorded(_ context.Context, _ interface{}) error {
	m.PaymentsRecorded.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Booking hooks
// ──────────────────────────────────────────────────

// OnBookingCreated implements plugin.OnBookingCreated.
func (m *MetricsExtension) OnBookingCreated(_ context.Context, _ interface{}) error {
	m.BookingsCreated.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Visitor hooks
// ──────────────────────────────────────────────────

// OnVisitorCheckedIn implements plugin.OnVisitorCheckedIn.
func (m *MetricsExtension) OnVisitorCheckedIn(_ context.Context, _ interface{}) error {
	m.VisitorCheckIns.Inc()
	return nil
}

// OnVisitorCheckedOut implements plugin.OnVisitorCheckedOut.
func (m *MetricsExtension) OnVisitorCheckedOut(_ context.Context, _ interface{}) error {
	m.VisitorCheckOuts.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Complaint hooks
// ──────────────────────────────────────────────────

// OnComplaintRaised implements plugin.OnComplaintRaised.
func (m *MetricsExtension) OnComplaintRaised(_ context.Context, _ interface{}) error {
	m.ComplaintsRaised.Inc()
	return nil
}

// OnComplaintAdvanced implements plugin.OnComplaintAdvanced.
func (m *MetricsExtension) OnComplaintAdvanced(_ context.Context, _ interface{}) error {
	m.ComplaintsAdvanced.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Broadcast hooks
// ──────────────────────────────────────────────────

// OnBroadcastCreated implements plugin.OnBroadcastCreated.
func (m *MetricsExtension) OnBroadcastCreated(_ context.Context, _ interface{}) error {
	m.BroadcastsCreated.Inc()
	return nil
}
