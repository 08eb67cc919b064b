// Package plugin provides an extensible plugin system for the society
// operations engine. Plugins can hook into lifecycle events to extend
// functionality.
package plugin

import (
	"context"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Flat registry hooks
// ──────────────────────────────────────────────────

// OnFlatRegistered is called when a flat is registered.
type OnFlatRegistered interface {
	Plugin
	OnFlatRegistered(ctx context.Context, flat interface{}) error
}

// ──────────────────────────────────────────────────
// Billing hooks
// ──────────────────────────────────────────────────

// OnBillGenerated is called for each bill created during generation.
type OnBillGenerated interface {
	Plugin
	OnBillGenerated(ctx context.Context, bill interface{}) error
}

// OnPaymentRecorded is called when a bill payment is confirmed.
type OnPaymentRecorded interface {
	Plugin
	OnPaymentRecorded(ctx context.Context, payment interface{}) error
}

// ──────────────────────────────────────────────────
// Booking hooks
// ──────────────────────────────────────────────────

// OnBookingCreated is called when an amenity slot is booked.
type OnBookingCreated interface {
	Plugin
	OnBookingCreated(ctx context.Context, booking interface{}) error
}

// ──────────────────────────────────────────────────
// Visitor hooks
// ──────────────────────────────────────────────────

// OnVisitorCheckedIn is called when a visitor session opens.
type OnVisitorCheckedIn interface {
	Plugin
	OnVisitorCheckedIn(ctx context.Context, session interface{}) error
}

// OnVisitorCheckedOut is called when a visitor session closes.
type OnVisitorCheckedOut interface {
	Plugin
	OnVisitorCheckedOut(ctx context.Context, session interface{}) error
}

// ──────────────────────────────────────────────────
// Complaint hooks
// ──────────────────────────────────────────────────

// OnComplaintRaised is called when a complaint is filed.
type OnComplaintRaised interface {
	Plugin
	OnComplaintRaised(ctx context.Context, complaint interface{}) error
}

// OnComplaintAdvanced is called when a complaint's status moves forward.
type OnComplaintAdvanced interface {
	Plugin
	OnComplaintAdvanced(ctx context.Context, complaint interface{}) error
}

// ──────────────────────────────────────────────────
// Broadcast hooks
// ──────────────────────────────────────────────────

// OnBroadcastCreated is called when an announcement is published.
type OnBroadcastCreated interface {
	Plugin
	OnBroadcastCreated(ctx context.Context, broadcast interface{}) error
}
