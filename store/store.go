// Package store defines the storage interface for the society
// operations engine.
package store

import (
	"context"
	"time"

	"github.com/towertech/societyops/activity"
	"github.com/towertech/societyops/billing"
	"github.com/towertech/societyops/booking"
	"github.com/towertech/societyops/broadcast"
	"github.com/towertech/societyops/complaint"
	"github.com/towertech/societyops/flat"
	"github.com/towertech/societyops/id"
	"github.com/towertech/societyops/visitor"
)

// Store is the interface all storage backends must implement.
//
// Mutating methods take an *activity.Entry and must persist the entity
// change and the log entry atomically: either both are visible after
// the call, or neither is. Backends with native transactions wrap both
// writes in one; the in-memory backend serializes them under a single
// lock.
type Store interface {
	// Flat operations
	CreateFlat(ctx context.Context, f *flat.Flat, entry *activity.Entry) error
	GetFlat(ctx context.Context, flatID id.FlatID) (*flat.Flat, error)
	ListFlats(ctx context.Context, opts flat.ListOpts) ([]*flat.Flat, error)

	// Bill operations
	CreateBill(ctx context.Context, b *billing.Bill, entry *activity.Entry) error
	GetBill(ctx context.Context, billID id.BillID) (*billing.Bill, error)
	GetBillByPeriod(ctx context.Context, flatID id.FlatID, period billing.Period) (*billing.Bill, error)
	ListBills(ctx context.Context, opts billing.ListOpts) ([]*billing.Bill, error)
	BillTotals(ctx context.Context, opts billing.ListOpts) (*billing.Totals, error)

	// Payment operations
	RecordPayment(ctx context.Context, p *billing.Payment, paidAt time.Time, entry *activity.Entry) error
	GetPayment(ctx context.Context, paymentID id.PaymentID) (*billing.Payment, error)

	// Booking operations
	CreateBooking(ctx context.Context, b *booking.Booking, entry *activity.Entry) error
	GetBooking(ctx context.Context, bookingID id.BookingID) (*booking.Booking, error)
	ListBookings(ctx context.Context, opts booking.ListOpts) ([]*booking.Booking, error)

	// Visitor session operations
	CreateSession(ctx context.Context, s *visitor.Session, entry *activity.Entry) error
	CloseSession(ctx context.Context, sessionID id.SessionID, exitAt time.Time, entry *activity.Entry) error
	GetSession(ctx context.Context, sessionID id.SessionID) (*visitor.Session, error)
	ListSessions(ctx context.Context, opts visitor.ListOpts) ([]*visitor.Session, error)

	// Complaint operations
	CreateComplaint(ctx context.Context, c *complaint.Complaint, entry *activity.Entry) error
	AdvanceComplaint(ctx context.Context, complaintID id.ComplaintID, from, to complaint.Status, resolvedAt *time.Time, entry *activity.Entry) error
	GetComplaint(ctx context.Context, complaintID id.ComplaintID) (*complaint.Complaint, error)
	ListComplaints(ctx context.Context, opts complaint.ListOpts) ([]*complaint.Complaint, error)

	// Broadcast operations
	CreateBroadcast(ctx context.Context, b *broadcast.Broadcast, entry *activity.Entry) error
	GetBroadcast(ctx context.Context, broadcastID id.BroadcastID) (*broadcast.Broadcast, error)
	ListBroadcasts(ctx context.Context, opts broadcast.ListOpts) ([]*broadcast.Broadcast, error)

	// Activity log (append happens inside the mutating methods above)
	ListActivity(ctx context.Context, opts activity.ListOpts) ([]*activity.Entry, error)
	CountActivity(ctx context.Context, action activity.Action) (int64, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
