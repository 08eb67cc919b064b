// Package memory provides an in-memory store for testing and
// single-process deployments.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/towertech/societyops"
	"github.com/towertech/societyops/activity"
	"github.com/towertech/societyops/billing"
	"github.com/towertech/societyops/booking"
	"github.com/towertech/societyops/broadcast"
	"github.com/towertech/societyops/complaint"
	"github.com/towertech/societyops/flat"
	"github.com/towertech/societyops/id"
	"github.com/towertech/societyops/visitor"
)

// Store keeps everything behind one mutex, so each compound write
// (entity change plus activity entry) is trivially atomic.
type Store struct {
	mu sync.RWMutex

	// Flat storage
	flats     map[string]*flat.Flat
	flatUnits map[string]string // "tower|number" -> flat ID

	// Billing storage
	bills       map[string]*billing.Bill
	billPeriods map[string]string // "flatID|periodKey" -> bill ID
	payments    map[string]*billing.Payment

	// Booking storage
	bookings    map[string]*booking.Booking
	bookingKeys map[string]string // booking.Key -> booking ID

	// Visitor session storage
	sessions map[string]*visitor.Session

	// Complaint storage
	complaints map[string]*complaint.Complaint

	// Broadcast storage
	broadcasts map[string]*broadcast.Broadcast

	// Activity log, append-only in commit order
	log []*activity.Entry
}

func New() *Store {
	return &Store{
		flats:       make(map[string]*flat.Flat),
		flatUnits:   make(map[string]string),
		bills:       make(map[string]*billing.Bill),
		billPeriods: make(map[string]string),
		payments:    make(map[string]*billing.Payment),
		bookings:    make(map[string]*booking.Booking),
		bookingKeys: make(map[string]string),
		sessions:    make(map[string]*visitor.Session),
		complaints:  make(map[string]*complaint.Complaint),
		broadcasts:  make(map[string]*broadcast.Broadcast),
		log:         make([]*activity.Entry, 0),
	}
}

// append records a log entry. Callers must hold the write lock.
func (s *Store) append(entry *activity.Entry) {
	if entry != nil {
		s.log = append(s.log, entry)
	}
}

// Flat Store implementation

func (s *Store) CreateFlat(_ context.Context, f *flat.Flat, entry *activity.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	unit := f.Tower + "|" + f.Number
	if _, exists := s.flatUnits[unit]; exists {
		return societyops.ErrFlatExists
	}
	s.flats[f.ID.String()] = f
	s.flatUnits[unit] = f.ID.String()
	s.append(entry)
	return nil
}

func (s *Store) GetFlat(_ context.Context, flatID id.FlatID) (*flat.Flat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if f, ok := s.flats[flatID.String()]; ok {
		return f, nil
	}
	return nil, societyops.ErrFlatNotFound
}

func (s *Store) ListFlats(_ context.Context, opts flat.ListOpts) ([]*flat.Flat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*flat.Flat, 0)
	for _, f := range s.flats {
		if opts.Tower == "" || f.Tower == opts.Tower {
			result = append(result, f)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Tower != result[j].Tower {
			return result[i].Tower < result[j].Tower
		}
		return result[i].Number < result[j].Number
	})
	return window(result, opts.Offset, opts.Limit), nil
}

// Bill Store implementation

func (s *Store) CreateBill(_ context.Context, b *billing.Bill, entry *activity.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := b.FlatID.String() + "|" + b.Period.Key()
	if _, exists := s.billPeriods[key]; exists {
		return societyops.ErrBillExists
	}
	s.bills[b.ID.String()] = b
	s.billPeriods[key] = b.ID.String()
	s.append(entry)
	return nil
}

func (s *Store) GetBill(_ context.Context, billID id.BillID) (*billing.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b, ok := s.bills[billID.String()]; ok {
		return b, nil
	}
	return nil, societyops.ErrBillNotFound
}

func (s *Store) GetBillByPeriod(_ context.Context, flatID id.FlatID, period billing.Period) (*billing.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if billID, ok := s.billPeriods[flatID.String()+"|"+period.Key()]; ok {
		return s.bills[billID], nil
	}
	return nil, societyops.ErrBillNotFound
}

func (s *Store) ListBills(_ context.Context, opts billing.ListOpts) ([]*billing.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := s.filterBills(opts)
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID.String() < result[j].ID.String()
	})
	return window(result, opts.Offset, opts.Limit), nil
}

func (s *Store) filterBills(opts billing.ListOpts) []*billing.Bill {
	result := make([]*billing.Bill, 0)
	for _, b := range s.bills {
		if !opts.FlatID.IsNil() && b.FlatID.String() != opts.FlatID.String() {
			continue
		}
		if opts.Period != nil && b.Period.Key() != opts.Period.Key() {
			continue
		}
		if opts.Status != "" && b.Status != opts.Status {
			continue
		}
		result = append(result, b)
	}
	return result
}

func (s *Store) BillTotals(_ context.Context, opts billing.ListOpts) (*billing.Totals, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := &billing.Totals{}
	for _, b := range s.filterBills(opts) {
		totals.Bills++
		totals.Billed = totals.Billed.Add(b.Amount)
		if b.Status == billing.StatusPaid {
			totals.Paid++
			totals.Collected = totals.Collected.Add(b.Amount)
		} else {
			totals.Unpaid++
			totals.Outstanding = totals.Outstanding.Add(b.Amount)
		}
	}
	return totals, nil
}

// Payment Store implementation

func (s *Store) RecordPayment(_ context.Context, p *billing.Payment, paidAt time.Time, entry *activity.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bills[p.BillID.String()]
	if !ok {
		return societyops.ErrBillNotFound
	}
	if b.Status == billing.StatusPaid {
		return societyops.ErrAlreadyPaid
	}
	b.Status = billing.StatusPaid
	b.PaidAt = &paidAt
	b.Touch()
	s.payments[p.ID.String()] = p
	s.append(entry)
	return nil
}

func (s *Store) GetPayment(_ context.Context, paymentID id.PaymentID) (*billing.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.payments[paymentID.String()]; ok {
		return p, nil
	}
	return nil, societyops.ErrNotFound
}

// Booking Store implementation

func (s *Store) CreateBooking(_ context.Context, b *booking.Booking, entry *activity.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := booking.Key(b.Amenity, b.Date, b.Slot)
	if _, exists := s.bookingKeys[key]; exists {
		return societyops.ErrSlotTaken
	}
	s.bookings[b.ID.String()] = b
	s.bookingKeys[key] = b.ID.String()
	s.append(entry)
	return nil
}

func (s *Store) GetBooking(_ context.Context, bookingID id.BookingID) (*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b, ok := s.bookings[bookingID.String()]; ok {
		return b, nil
	}
	return nil, societyops.ErrBookingNotFound
}

func (s *Store) ListBookings(_ context.Context, opts booking.ListOpts) ([]*booking.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*booking.Booking, 0)
	for _, b := range s.bookings {
		if opts.Amenity != "" && b.Amenity != opts.Amenity {
			continue
		}
		if !opts.Date.IsZero() && !b.Date.Equal(booking.Day(opts.Date)) {
			continue
		}
		if !opts.FlatID.IsNil() && b.FlatID.String() != opts.FlatID.String() {
			continue
		}
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].Slot < result[j].Slot
	})
	return window(result, opts.Offset, opts.Limit), nil
}

// Visitor Store implementation

func (s *Store) CreateSession(_ context.Context, sess *visitor.Session, entry *activity.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID.String()] = sess
	s.append(entry)
	return nil
}

func (s *Store) CloseSession(_ context.Context, sessionID id.SessionID, exitAt time.Time, entry *activity.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID.String()]
	if !ok {
		return societyops.ErrSessionNotFound
	}
	if sess.Status == visitor.StatusOut {
		return societyops.ErrAlreadyOut
	}
	sess.Status = visitor.StatusOut
	sess.ExitAt = &exitAt
	sess.Touch()
	s.append(entry)
	return nil
}

func (s *Store) GetSession(_ context.Context, sessionID id.SessionID) (*visitor.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sess, ok := s.sessions[sessionID.String()]; ok {
		return sess, nil
	}
	return nil, societyops.ErrSessionNotFound
}

func (s *Store) ListSessions(_ context.Context, opts visitor.ListOpts) ([]*visitor.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*visitor.Session, 0)
	for _, sess := range s.sessions {
		if opts.Tower != "" && sess.Tower != opts.Tower {
			continue
		}
		if !opts.FlatID.IsNil() && sess.FlatID.String() != opts.FlatID.String() {
			continue
		}
		if opts.OpenOnly && sess.Status != visitor.StatusIn {
			continue
		}
		result = append(result, sess)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].EntryAt.Before(result[j].EntryAt)
	})
	return window(result, opts.Offset, opts.Limit), nil
}

// Complaint Store implementation

func (s *Store) CreateComplaint(_ context.Context, c *complaint.Complaint, entry *activity.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.complaints[c.ID.String()] = c
	s.append(entry)
	return nil
}

func (s *Store) AdvanceComplaint(_ context.Context, complaintID id.ComplaintID, from, to complaint.Status, resolvedAt *time.Time, entry *activity.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.complaints[complaintID.String()]
	if !ok {
		return societyops.ErrComplaintNotFound
	}
	if c.Status != from {
		return societyops.ErrInvalidTransition
	}
	c.Status = to
	c.ResolvedAt = resolvedAt
	c.Touch()
	s.append(entry)
	return nil
}

func (s *Store) GetComplaint(_ context.Context, complaintID id.ComplaintID) (*complaint.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.complaints[complaintID.String()]; ok {
		return c, nil
	}
	return nil, societyops.ErrComplaintNotFound
}

func (s *Store) ListComplaints(_ context.Context, opts complaint.ListOpts) ([]*complaint.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*complaint.Complaint, 0)
	for _, c := range s.complaints {
		if !opts.FlatID.IsNil() && c.FlatID.String() != opts.FlatID.String() {
			continue
		}
		if opts.Status != "" && c.Status != opts.Status {
			continue
		}
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return window(result, opts.Offset, opts.Limit), nil
}

// Broadcast Store implementation

func (s *Store) CreateBroadcast(_ context.Context, b *broadcast.Broadcast, entry *activity.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.broadcasts[b.ID.String()] = b
	s.append(entry)
	return nil
}

func (s *Store) GetBroadcast(_ context.Context, broadcastID id.BroadcastID) (*broadcast.Broadcast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b, ok := s.broadcasts[broadcastID.String()]; ok {
		return b, nil
	}
	return nil, societyops.ErrBroadcastNotFound
}

func (s *Store) ListBroadcasts(_ context.Context, opts broadcast.ListOpts) ([]*broadcast.Broadcast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*broadcast.Broadcast, 0)
	for _, b := range s.broadcasts {
		if opts.Kind != "" && b.Kind != opts.Kind {
			continue
		}
		if opts.Tower != "" && b.Tower != "" && b.Tower != opts.Tower {
			continue
		}
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return window(result, opts.Offset, opts.Limit), nil
}

// Activity Store implementation

func (s *Store) ListActivity(_ context.Context, opts activity.ListOpts) ([]*activity.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*activity.Entry, 0)
	for _, e := range s.log {
		if opts.Actor != "" && e.Actor != opts.Actor {
			continue
		}
		if opts.Action != "" && e.Action != opts.Action {
			continue
		}
		if !opts.Since.IsZero() && e.Timestamp.Before(opts.Since) {
			continue
		}
		if !opts.Until.IsZero() && e.Timestamp.After(opts.Until) {
			continue
		}
		result = append(result, e)
	}
	return window(result, opts.Offset, opts.Limit), nil
}

func (s *Store) CountActivity(_ context.Context, action activity.Action) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, e := range s.log {
		if action == "" || e.Action == action {
			n++
		}
	}
	return n, nil
}

// Lifecycle

func (s *Store) Migrate(_ context.Context) error { return nil }

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// window applies offset/limit pagination to a sorted slice. Negative
// or oversized values clamp rather than panic; a limit of zero or less
// means no limit.
func window[T any](in []T, offset, limit int) []T {
	start := offset
	if start < 0 {
		start = 0
	}
	if start > len(in) {
		start = len(in)
	}
	end := len(in)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	return in[start:end]
}
