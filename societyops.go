package societyops

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/towertech/societyops/activity"
	"github.com/towertech/societyops/billing"
	"github.com/towertech/societyops/booking"
	"github.com/towertech/societyops/broadcast"
	"github.com/towertech/societyops/complaint"
	"github.com/towertech/societyops/flat"
	"github.com/towertech/societyops/id"
	"github.com/towertech/societyops/plugin"
	"github.com/towertech/societyops/store"
	"github.com/towertech/societyops/types"
	"github.com/towertech/societyops/visitor"
)

// Engine is the main society operations engine.
type Engine struct {
	store   store.Store
	plugins *plugin.Registry
	logger  *slog.Logger

	// Configuration
	now          func() time.Time
	defaultActor string
}

// New creates a new Engine instance.
func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:        s,
		plugins:      plugin.NewRegistry(),
		logger:       slog.Default(),
		now:          time.Now,
		defaultActor: "system",
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
		e.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithClock overrides the engine's time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithDefaultActor sets the actor recorded on activity entries when the
// context carries none. Defaults to "system".
func WithDefaultActor(actor string) Option {
	return func(e *Engine) {
		if actor != "" {
			e.defaultActor = actor
		}
	}
}

// Start migrates the store and initializes plugins.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.store.Migrate(ctx); err != nil {
		return err
	}

	e.plugins.EmitInit(ctx, e)

	e.logger.Info("society operations engine started")
	return nil
}

// Stop shuts down the Engine.
func (e *Engine) Stop() error {
	e.plugins.EmitShutdown(context.Background())
	return e.store.Close()
}

// ──────────────────────────────────────────────────
// Flat Registry
// ──────────────────────────────────────────────────

// RegisterFlat registers a flat under its tower. Tower plus flat number
// must be unique across the society.
func (e *Engine) RegisterFlat(ctx context.Context, f *flat.Flat) error {
	if f.Tower == "" {
		return ValidationError{Field: "tower", Message: "required"}
	}
	if f.Number == "" {
		return ValidationError{Field: "number", Message: "required"}
	}
	if f.ID.IsNil() {
		f.ID = id.NewFlatID()
	}
	f.Entity = types.NewEntity()

	entry := activity.New(e.actorFrom(ctx), activity.ActionFlatRegistered, f.Label())
	if err := e.store.CreateFlat(ctx, f, entry); err != nil {
		return err
	}

	e.plugins.EmitFlatRegistered(ctx, f)
	return nil
}

// GetFlat retrieves a flat by ID.
func (e *Engine) GetFlat(ctx context.Context, flatID id.FlatID) (*flat.Flat, error) {
	return e.store.GetFlat(ctx, flatID)
}

// ListFlats lists flats, optionally filtered by tower.
func (e *Engine) ListFlats(ctx context.Context, opts flat.ListOpts) ([]*flat.Flat, error) {
	return e.store.ListFlats(ctx, opts)
}

// FlatStatus derives a flat's maintenance status from its most recent
// bill: Due if that bill is unpaid, Clear otherwise. The status is never
// stored.
func (e *Engine) FlatStatus(ctx context.Context, flatID id.FlatID) (flat.MaintenanceStatus, error) {
	if _, err := e.store.GetFlat(ctx, flatID); err != nil {
		return "", err
	}

	bills, err := e.store.ListBills(ctx, billing.ListOpts{FlatID: flatID})
	if err != nil {
		return "", err
	}
	if len(bills) == 0 {
		return flat.StatusClear, nil
	}

	latest := bills[0]
	for _, b := range bills[1:] {
		if b.Period.Key() > latest.Period.Key() {
			latest = b
		}
	}
	if latest.Status == billing.StatusUnpaid {
		return flat.StatusDue, nil
	}
	return flat.StatusClear, nil
}

// ──────────────────────────────────────────────────
// Billing Engine
// ──────────────────────────────────────────────────

// GenerateBills creates one unpaid bill per flat for the given period,
// skipping flats that already have one. The operation is idempotent:
// repeating it for the same period creates nothing new, and the full
// bill set for the period is returned either way. Each flat's bill is
// its own store transaction, so a mid-run failure leaves already
// created bills intact and a retry fills in only the missing ones.
func (e *Engine) GenerateBills(ctx context.Context, period billing.Period, amount types.Money, dueDate time.Time) ([]*billing.Bill, error) {
	if err := period.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if !amount.IsPositive() {
		return nil, ValidationError{Field: "amount", Message: "must be positive"}
	}

	flats, err := e.store.ListFlats(ctx, flat.ListOpts{})
	if err != nil {
		return nil, err
	}

	actor := e.actorFrom(ctx)
	created := 0
	for _, f := range flats {
		b := &billing.Bill{
			Entity:  types.NewEntity(),
			ID:      id.NewBillID(),
			FlatID:  f.ID,
			Period:  period,
			Amount:  amount,
			Status:  billing.StatusUnpaid,
			DueDate: dueDate,
		}

		entry := activity.New(actor, activity.ActionBillGenerated,
			fmt.Sprintf("%s %s %s", f.Label(), period.Key(), amount))
		err := e.store.CreateBill(ctx, b, entry)
		switch {
		case err == nil:
			created++
			e.plugins.EmitBillGenerated(ctx, b)
		case IsConflict(err):
			// Flat already billed for this period.
		default:
			return nil, fmt.Errorf("generate bill for %s: %w", f.Label(), err)
		}
	}

	e.logger.Info("bills generated",
		"period", period.Key(),
		"flats", len(flats),
		"created", created,
	)

	return e.store.ListBills(ctx, billing.ListOpts{Period: &period})
}

// RecordPayment confirms payment of a bill and flips it to paid. This
// is the only unpaid -> paid path; there is no reverse transition.
func (e *Engine) RecordPayment(ctx context.Context, billID id.BillID, mode billing.Mode, reference string) (*billing.Payment, error) {
	if !mode.Valid() {
		return nil, ValidationError{Field: "mode", Message: "unknown payment mode"}
	}

	paidAt := e.now().UTC()
	p := &billing.Payment{
		ID:        id.NewPaymentID(),
		BillID:    billID,
		Mode:      mode,
		Reference: reference,
		Timestamp: paidAt,
	}

	entry := activity.New(e.actorFrom(ctx), activity.ActionPaymentRecorded,
		fmt.Sprintf("%s via %s", billID, mode))
	if err := e.store.RecordPayment(ctx, p, paidAt, entry); err != nil {
		return nil, err
	}

	e.plugins.EmitPaymentRecorded(ctx, p)
	return p, nil
}

// GetBill retrieves a bill by ID.
func (e *Engine) GetBill(ctx context.Context, billID id.BillID) (*billing.Bill, error) {
	return e.store.GetBill(ctx, billID)
}

// GetBillByPeriod retrieves the single bill for a flat and period.
func (e *Engine) GetBillByPeriod(ctx context.Context, flatID id.FlatID, period billing.Period) (*billing.Bill, error) {
	return e.store.GetBillByPeriod(ctx, flatID, period)
}

// ListBills lists bills matching the options.
func (e *Engine) ListBills(ctx context.Context, opts billing.ListOpts) ([]*billing.Bill, error) {
	return e.store.ListBills(ctx, opts)
}

// BillTotals aggregates billed, collected and outstanding amounts over
// the bills matching the options.
func (e *Engine) BillTotals(ctx context.Context, opts billing.ListOpts) (*billing.Totals, error) {
	return e.store.BillTotals(ctx, opts)
}

// ──────────────────────────────────────────────────
// Amenity Booking Scheduler
// ──────────────────────────────────────────────────

// RequestBooking reserves an amenity slot for a flat on a date. At most
// one booking exists per (amenity, date, slot); under concurrent
// requests for the same slot exactly one wins and the rest fail with
// ErrSlotTaken.
func (e *Engine) RequestBooking(ctx context.Context, amenity string, date time.Time, slot booking.Slot, flatID id.FlatID) (*booking.Booking, error) {
	if strings.TrimSpace(amenity) == "" {
		return nil, ValidationError{Field: "amenity", Message: "required"}
	}
	if !slot.Valid() {
		return nil, ErrInvalidSlot
	}

	day := booking.Day(date)
	if day.Before(booking.Day(e.now())) {
		return nil, ErrPastDate
	}

	f, err := e.store.GetFlat(ctx, flatID)
	if err != nil {
		return nil, err
	}

	b := &booking.Booking{
		Entity:  types.NewEntity(),
		ID:      id.NewBookingID(),
		Amenity: amenity,
		Date:    day,
		Slot:    slot,
		FlatID:  flatID,
	}

	entry := activity.New(e.actorFrom(ctx), activity.ActionBookingCreated,
		fmt.Sprintf("%s %s %s by %s", amenity, day.Format(booking.DateFormat), slot, f.Label()))
	if err := e.store.CreateBooking(ctx, b, entry); err != nil {
		return nil, err
	}

	e.plugins.EmitBookingCreated(ctx, b)
	return b, nil
}

// GetBooking retrieves a booking by ID.
func (e *Engine) GetBooking(ctx context.Context, bookingID id.BookingID) (*booking.Booking, error) {
	return e.store.GetBooking(ctx, bookingID)
}

// ListBookings lists bookings matching the options.
func (e *Engine) ListBookings(ctx context.Context, opts booking.ListOpts) ([]*booking.Booking, error) {
	return e.store.ListBookings(ctx, opts)
}

// ──────────────────────────────────────────────────
// Visitor Tracker
// ──────────────────────────────────────────────────

// CheckIn opens a visitor session for a flat. Visitors are identified
// by name only; multiple open sessions under the same name are allowed.
func (e *Engine) CheckIn(ctx context.Context, name, tower string, flatID id.FlatID) (*visitor.Session, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ValidationError{Field: "name", Message: "required"}
	}

	f, err := e.store.GetFlat(ctx, flatID)
	if err != nil {
		return nil, err
	}
	if tower == "" {
		tower = f.Tower
	}

	sess := &visitor.Session{
		Entity:  types.NewEntity(),
		ID:      id.NewSessionID(),
		Name:    name,
		Tower:   tower,
		FlatID:  flatID,
		EntryAt: e.now().UTC(),
		Status:  visitor.StatusIn,
	}

	entry := activity.New(e.actorFrom(ctx), activity.ActionVisitorCheckedIn,
		fmt.Sprintf("%s at %s", name, f.Label()))
	if err := e.store.CreateSession(ctx, sess, entry); err != nil {
		return nil, err
	}

	e.plugins.EmitVisitorCheckedIn(ctx, sess)
	return sess, nil
}

// CheckOut closes an open visitor session. A second check-out is
// rejected with ErrAlreadyOut so the recorded exit time never changes.
func (e *Engine) CheckOut(ctx context.Context, sessionID id.SessionID) (*visitor.Session, error) {
	exitAt := e.now().UTC()
	entry := activity.New(e.actorFrom(ctx), activity.ActionVisitorCheckedOut, sessionID.String())
	if err := e.store.CloseSession(ctx, sessionID, exitAt, entry); err != nil {
		return nil, err
	}

	sess, err := e.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	e.plugins.EmitVisitorCheckedOut(ctx, sess)
	return sess, nil
}

// GetSession retrieves a visitor session by ID.
func (e *Engine) GetSession(ctx context.Context, sessionID id.SessionID) (*visitor.Session, error) {
	return e.store.GetSession(ctx, sessionID)
}

// ListSessions lists visitor sessions matching the options.
func (e *Engine) ListSessions(ctx context.Context, opts visitor.ListOpts) ([]*visitor.Session, error) {
	return e.store.ListSessions(ctx, opts)
}

// ListOpenSessions lists visitors currently inside, optionally filtered
// by tower.
func (e *Engine) ListOpenSessions(ctx context.Context, tower string) ([]*visitor.Session, error) {
	return e.store.ListSessions(ctx, visitor.ListOpts{Tower: tower, OpenOnly: true})
}

// ──────────────────────────────────────────────────
// Complaint Workflow
// ──────────────────────────────────────────────────

// RaiseComplaint files a complaint for a flat with status pending.
func (e *Engine) RaiseComplaint(ctx context.Context, c *complaint.Complaint) error {
	if strings.TrimSpace(c.Title) == "" {
		return ValidationError{Field: "title", Message: "required"}
	}
	if _, err := e.store.GetFlat(ctx, c.FlatID); err != nil {
		return err
	}
	if c.ID.IsNil() {
		c.ID = id.NewComplaintID()
	}
	c.Entity = types.NewEntity()
	c.Status = complaint.StatusPending

	entry := activity.New(e.actorFrom(ctx), activity.ActionComplaintRaised, c.Title)
	if err := e.store.CreateComplaint(ctx, c, entry); err != nil {
		return err
	}

	e.plugins.EmitComplaintRaised(ctx, c)
	return nil
}

// AdvanceComplaint moves a complaint forward in the pending ->
// in_progress -> resolved order. Skipping forward is allowed; moving
// backward or staying put fails with ErrInvalidTransition. The store
// applies the transition conditionally on the observed current status,
// so a concurrent advance cannot be applied twice.
func (e *Engine) AdvanceComplaint(ctx context.Context, complaintID id.ComplaintID, to complaint.Status) (*complaint.Complaint, error) {
	c, err := e.store.GetComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	if !complaint.CanAdvance(c.Status, to) {
		return nil, ErrInvalidTransition
	}

	var resolvedAt *time.Time
	if to == complaint.StatusResolved {
		t := e.now().UTC()
		resolvedAt = &t
	}

	entry := activity.New(e.actorFrom(ctx), activity.ActionComplaintAdvanced,
		fmt.Sprintf("%s: %s -> %s", c.Title, c.Status, to))
	if err := e.store.AdvanceComplaint(ctx, complaintID, c.Status, to, resolvedAt, entry); err != nil {
		return nil, err
	}

	updated, err := e.store.GetComplaint(ctx, complaintID)
	if err != nil {
		return nil, err
	}

	e.plugins.EmitComplaintAdvanced(ctx, updated)
	return updated, nil
}

// GetComplaint retrieves a complaint by ID.
func (e *Engine) GetComplaint(ctx context.Context, complaintID id.ComplaintID) (*complaint.Complaint, error) {
	return e.store.GetComplaint(ctx, complaintID)
}

// ListComplaints lists complaints matching the options.
func (e *Engine) ListComplaints(ctx context.Context, opts complaint.ListOpts) ([]*complaint.Complaint, error) {
	return e.store.ListComplaints(ctx, opts)
}

// ──────────────────────────────────────────────────
// Broadcasts
// ──────────────────────────────────────────────────

// CreateBroadcast publishes a society-wide or per-tower announcement.
func (e *Engine) CreateBroadcast(ctx context.Context, b *broadcast.Broadcast) error {
	if strings.TrimSpace(b.Title) == "" {
		return ValidationError{Field: "title", Message: "required"}
	}
	if b.Kind == "" {
		b.Kind = broadcast.KindNotice
	}
	if b.Severity == "" {
		b.Severity = broadcast.SeverityInfo
	}
	if b.ID.IsNil() {
		b.ID = id.NewBroadcastID()
	}
	b.Entity = types.NewEntity()

	entry := activity.New(e.actorFrom(ctx), activity.ActionBroadcastCreated, b.Title)
	if err := e.store.CreateBroadcast(ctx, b, entry); err != nil {
		return err
	}

	e.plugins.EmitBroadcastCreated(ctx, b)
	return nil
}

// GetBroadcast retrieves a broadcast by ID.
func (e *Engine) GetBroadcast(ctx context.Context, broadcastID id.BroadcastID) (*broadcast.Broadcast, error) {
	return e.store.GetBroadcast(ctx, broadcastID)
}

// ListBroadcasts lists broadcasts matching the options.
func (e *Engine) ListBroadcasts(ctx context.Context, opts broadcast.ListOpts) ([]*broadcast.Broadcast, error) {
	return e.store.ListBroadcasts(ctx, opts)
}

// ──────────────────────────────────────────────────
// Activity Log
// ──────────────────────────────────────────────────

// ListActivity reads the append-only activity log.
func (e *Engine) ListActivity(ctx context.Context, opts activity.ListOpts) ([]*activity.Entry, error) {
	return e.store.ListActivity(ctx, opts)
}

// CountActivity counts log entries, optionally for one action.
func (e *Engine) CountActivity(ctx context.Context, action activity.Action) (int64, error) {
	return e.store.CountActivity(ctx, action)
}

// ──────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────

type actorKey struct{}

// WithActor tags the context with the acting user; activity entries
// record it. Absent an actor, entries are attributed to "system".
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func (e *Engine) actorFrom(ctx context.Context) string {
	if v := ctx.Value(actorKey{}); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return e.defaultActor
}
