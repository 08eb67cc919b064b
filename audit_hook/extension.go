// Package audithook bridges engine lifecycle events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not depend on any
// particular audit system. Callers inject a RecorderFunc adapter that bridges
// to their backend at wiring time.
package audithook

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/towertech/societyops/plugin"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin              = (*Extension)(nil)
	_ plugin.OnFlatRegistered    = (*Extension)(nil)
	_ plugin.OnBillGenerated     = (*Extension)(nil)
	_ plugin.OnPaymentRecorded   = (*Extension)(nil)
	_ plugin.OnBookingCreated    = (*Extension)(nil)
	_ plugin.OnVisitorCheckedIn  = (*Extension)(nil)
	_ plugin.OnVisitorCheckedOut = (*Extension)(nil)
	_ plugin.OnComplaintRaised   = (*Extension)(nil)
	_ plugin.OnComplaintAdvanced = (*Extension)(nil)
	_ plugin.OnBroadcastCreated  = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// It is defined locally so this package carries no backend dependency —
// callers inject the concrete recorder at wiring time.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is a local representation of an audit event.
type AuditEvent struct {
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	Category   string         `json:"category"`
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Outcome    string         `json:"outcome"`
	Severity   string         `json:"severity"`
	Reason     string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges engine lifecycle events to an audit trail backend.
type Extension struct {
	recorder Recorder
	enabled  map[string]bool // nil = all enabled
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Flat registry hooks
// ──────────────────────────────────────────────────

// OnFlatRegistered implements plugin.OnFlatRegistered.
func (e *Extension) OnFlatRegistered(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionFlatRegistered, SeverityInfo, OutcomeSuccess,
		ResourceFlat, "", CategoryRegistry, nil,
		"event", "flat_registered",
	)
}

// ──────────────────────────────────────────────────
// Billing hooks
// ──────────────────────────────────────────────────

// OnBillGenerated implements plugin.OnBillGenerated.
func (e *Extension) OnBillGenerated(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionBillGenerated, SeverityInfo, OutcomeSuccess,
		ResourceBill, "", CategoryBilling, nil,
		"event", "bill_generated",
	)
}

// OnPaymentRecorded implements plugin.OnPaymentRecorded.
func (e *Extension) OnPaymentRecorded(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionPaymentRecorded, SeverityInfo, OutcomeSuccess,
		ResourcePayment, "", CategoryBilling, nil,
		"event", "payment_recorded",
	)
}

// ──────────────────────────────────────────────────
// Booking hooks
// ──────────────────────────────────────────────────

// OnBookingCreated implements plugin.OnBookingCreated.
func (e *Extension) OnBookingCreated(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionBookingCreated, SeverityInfo, OutcomeSuccess,
		ResourceBooking, "", CategoryAmenity, nil,
		"event", "booking_created",
	)
}

// ──────────────────────────────────────────────────
// Visitor hooks
// ──────────────────────────────────────────────────

// OnVisitorCheckedIn implements plugin.OnVisitorCheckedIn.
func (e *Extension) OnVisitorCheckedIn(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionVisitorCheckedIn, SeverityInfo, OutcomeSuccess,
		ResourceVisitor, "", CategorySecurity, nil,
		"event", "visitor_checked_in",
	)
}

// OnVisitorCheckedOut implements plugin.OnVisitorCheckedOut.
func (e *Extension) OnVisitorCheckedOut(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionVisitorCheckedOut, SeverityInfo, OutcomeSuccess,
		ResourceVisitor, "", CategorySecurity, nil,
		"event", "visitor_checked_out",
	)
}

// ──────────────────────────────────────────────────
// Complaint hooks
// ──────────────────────────────────────────────────

// OnComplaintRaised implements plugin.OnComplaintRaised.
func (e *Extension) OnComplaintRaised(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionComplaintRaised, SeverityWarning, OutcomeSuccess,
		ResourceComplaint, "", CategoryGrievance, nil,
		"event", "complaint_raised",
	)
}

// OnComplaintAdvanced implements plugin.OnComplaintAdvanced.
func (e *Extension) OnComplaintAdvanced(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionComplaintAdvanced, SeverityInfo, OutcomeSuccess,
		ResourceComplaint, "", CategoryGrievance, nil,
		"event", "complaint_advanced",
	)
}

// ──────────────────────────────────────────────────
// Broadcast hooks
// ──────────────────────────────────────────────────

// OnBroadcastCreated implements plugin.OnBroadcastCreated.
func (e *Extension) OnBroadcastCreated(ctx context.Context, _ interface{}) error {
	return e.record(ctx, ActionBroadcastCreated, SeverityInfo, OutcomeSuccess,
		ResourceBroadcast, "", CategoryNotice, nil,
		"event", "broadcast_created",
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if e.enabled != nil && !e.enabled[action] {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
