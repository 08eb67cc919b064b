package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit              []OnInit
	onShutdown          []OnShutdown
	onFlatRegistered    []OnFlatRegistered
	onBillGenerated     []OnBillGenerated
	onPaymentRecorded   []OnPaymentRecorded
	onBookingCreated    []OnBookingCreated
	onVisitorCheckedIn  []OnVisitorCheckedIn
	onVisitorCheckedOut []OnVisitorCheckedOut
	onComplaintRaised   []OnComplaintRaised
	onComplaintAdvanced []OnComplaintAdvanced
	onBroadcastCreated  []OnBroadcastCreated
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnFlatRegistered); ok {
		r.onFlatRegistered = append(r.onFlatRegistered, v)
	}
	if v, ok := p.(OnBillGenerated); ok {
		r.onBillGenerated = append(r.onBillGenerated, v)
	}
	if v, ok := p.(OnPaymentRecorded); ok {
		r.onPaymentRecorded = append(r.onPaymentRecorded, v)
	}
	if v, ok := p.(OnBookingCreated); ok {
		r.onBookingCreated = append(r.onBookingCreated, v)
	}
	if v, ok := p.(OnVisitorCheckedIn); ok {
		r.onVisitorCheckedIn = append(r.onVisitorCheckedIn, v)
	}
	if v, ok := p.(OnVisitorCheckedOut); ok {
		r.onVisitorCheckedOut = append(r.onVisitorCheckedOut, v)
	}
	if v, ok := p.(OnComplaintRaised); ok {
		r.onComplaintRaised = append(r.onComplaintRaised, v)
	}
	if v, ok := p.(OnComplaintAdvanced); ok {
		r.onComplaintAdvanced = append(r.onComplaintAdvanced, v)
	}
	if v, ok := p.(OnBroadcastCreated); ok {
		r.onBroadcastCreated = append(r.onBroadcastCreated, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnFlatRegistered)(nil)).Elem(), "OnFlatRegistered")
	checkInterface(reflect.TypeOf((*OnBillGenerated)(nil)).Elem(), "OnBillGenerated")
	checkInterface(reflect.TypeOf((*OnPaymentRecorded)(nil)).Elem(), "OnPaymentRecorded")
	checkInterface(reflect.TypeOf((*OnBookingCreated)(nil)).Elem(), "OnBookingCreated")
	checkInterface(reflect.TypeOf((*OnVisitorCheckedIn)(nil)).Elem(), "OnVisitorCheckedIn")
	checkInterface(reflect.TypeOf((*OnVisitorCheckedOut)(nil)).Elem(), "OnVisitorCheckedOut")
	checkInterface(reflect.TypeOf((*OnComplaintRaised)(nil)).Elem(), "OnComplaintRaised")
	checkInterface(reflect.TypeOf((*OnComplaintAdvanced)(nil)).Elem(), "OnComplaintAdvanced")
	checkInterface(reflect.TypeOf((*OnBroadcastCreated)(nil)).Elem(), "OnBroadcastCreated")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitFlatRegistered emits a flat registered event.
func (r *Registry) EmitFlatRegistered(ctx context.Context, flat interface{}) {
	r.mu.RLock()
	plugins := r.onFlatRegistered
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnFlatRegistered(ctx, flat)
		}); err != nil {
			r.logger.Warn("plugin OnFlatRegistered failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitBillGenerated emits a bill generated event.
func (r *Registry) EmitBillGenerated(ctx context.Context, bill interface{}) {
	r.mu.RLock()
	plugins := r.onBillGenerated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnBillGenerated(ctx, bill)
		}); err != nil {
			r.logger.Warn("plugin OnBillGenerated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPaymentRecorded emits a payment recorded event.
func (r *Registry) EmitPaymentRecorded(ctx context.Context, payment interface{}) {
	r.mu.RLock()
	plugins := r.onPaymentRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPaymentRecorded(ctx, payment)
		}); err != nil {
			r.logger.Warn("plugin OnPaymentRecorded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitBookingCreated emits a booking created event.
func (r *Registry) EmitBookingCreated(ctx context.Context, booking interface{}) {
	r.mu.RLock()
	plugins := r.onBookingCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnBookingCreated(ctx, booking)
		}); err != nil {
			r.logger.Warn("plugin OnBookingCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitVisitorCheckedIn emits a visitor checked in event.
func (r *Registry) EmitVisitorCheckedIn(ctx context.Context, session interface{}) {
	r.mu.RLock()
	plugins := r.onVisitorCheckedIn
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnVisitorCheckedIn(ctx, session)
		}); err != nil {
			r.logger.Warn("plugin OnVisitorCheckedIn failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitVisitorCheckedOut emits a visitor checked out event.
func (r *Registry) EmitVisitorCheckedOut(ctx context.Context, session interface{}) {
	r.mu.RLock()
	plugins := r.onVisitorCheckedOut
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnVisitorCheckedOut(ctx, session)
		}); err != nil {
			r.logger.Warn("plugin OnVisitorCheckedOut failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitComplaintRaised emits a complaint raised event.
func (r *Registry) EmitComplaintRaised(ctx context.Context, complaint interface{}) {
	r.mu.RLock()
	plugins := r.onComplaintRaised
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnComplaintRaised(ctx, complaint)
		}); err != nil {
			r.logger.Warn("plugin OnComplaintRaised failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitComplaintAdvanced emits a complaint advanced event.
func (r *Registry) EmitComplaintAdvanced(ctx context.Context, complaint interface{}) {
	r.mu.RLock()
	plugins := r.onComplaintAdvanced
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnComplaintAdvanced(ctx, complaint)
		}); err != nil {
			r.logger.Warn("plugin OnComplaintAdvanced failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitBroadcastCreated emits a broadcast created event.
func (r *Registry) EmitBroadcastCreated(ctx context.Context, broadcast interface{}) {
	r.mu.RLock()
	plugins := r.onBroadcastCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnBroadcastCreated(ctx, broadcast)
		}); err != nil {
			r.logger.Warn("plugin OnBroadcastCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the engine's pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
