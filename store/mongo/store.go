// Package mongo implements the society store on MongoDB via Grove ORM.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/towertech/societyops"
	"github.com/towertech/societyops/activity"
	"github.com/towertech/societyops/billing"
	"github.com/towertech/societyops/booking"
	"github.com/towertech/societyops/broadcast"
	"github.com/towertech/societyops/complaint"
	"github.com/towertech/societyops/flat"
	"github.com/towertech/societyops/id"
	societystore "github.com/towertech/societyops/store"
	"github.com/towertech/societyops/visitor"
)

// Collection name constants.
const (
	colFlats      = "society_flats"
	colBills      = "society_bills"
	colPayments   = "society_payments"
	colBookings   = "society_bookings"
	colSessions   = "society_visitor_sessions"
	colComplaints = "society_complaints"
	colBroadcasts = "society_broadcasts"
	colActivity   = "society_activity_log"
)

// compile-time interface check
var _ societystore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all society collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("societyops/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// inTx runs fn inside a MongoDB multi-document transaction so entity
// writes and their activity entries commit together. Requires a replica
// set or mongos deployment.
func (s *Store) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	client := s.mdb.Collection(colActivity).Database().Client()
	session, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("societyops/mongo: start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(ctx context.Context) (interface{}, error) {
		return nil, fn(ctx)
	})
	return err
}

// ==================== Flat Store ====================

func (s *Store) CreateFlat(ctx context.Context, f *flat.Flat, entry *activity.Entry) error {
	m := toFlatModel(f)
	err := s.inTx(ctx, func(ctx context.Context) error {
		if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
			return err
		}
		return s.appendActivity(ctx, entry)
	})
	if mongo.IsDuplicateKeyError(err) {
		return societyops.ErrFlatExists
	}
	if err != nil {
		return fmt.Errorf("societyops/mongo: create flat: %w", err)
	}
	return nil
}

func (s *Store) GetFlat(ctx context.Context, flatID id.FlatID) (*flat.Flat, error) {
	var m flatModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": flatID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, societyops.ErrFlatNotFound
		}
		return nil, fmt.Errorf("societyops/mongo: get flat: %w", err)
	}
	return fromFlatModel(&m)
}

func (s *Store) ListFlats(ctx context.Context, opts flat.ListOpts) ([]*flat.Flat, error) {
	var models []flatModel

	filter := bson.M{}
	if opts.Tower != "" {
		filter["tower"] = opts.Tower
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "tower", Value: 1}, {Key: "number", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("societyops/mongo: list flats: %w", err)
	}

	result := make([]*flat.Flat, len(models))
	for i := range models {
		f, err := fromFlatModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = f
	}
	return result, nil
}

// ==================== Bill Store ====================

func (s *Store) CreateBill(ctx context.Context, b *billing.Bill, entry *activity.Entry) error {
	m := toBillModel(b)
	err := s.inTx(ctx, func(ctx context.Context) error {
		if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
			return err
		}
		return s.appendActivity(ctx, entry)
	})
	if mongo.IsDuplicateKeyError(err) {
		return societyops.ErrBillExists
	}
	if err != nil {
		return fmt.Errorf("societyops/mongo: create bill: %w", err)
	}
	return nil
}

func (s *Store) GetBill(ctx context.Context, billID id.BillID) (*billing.Bill, error) {
	var m billModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": billID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, societyops.ErrBillNotFound
		}
		return nil, fmt.Errorf("societyops/mongo: get bill: %w", err)
	}
	return fromBillModel(&m)
}

func (s *Store) GetBillByPeriod(ctx context.Context, flatID id.FlatID, period billing.Period) (*billing.Bill, error) {
	var m billModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{
			"flat_id":      flatID.String(),
			"period_year":  period.Year,
			"period_month": int(period.Month),
		}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, societyops.ErrBillNotFound
		}
		return nil, fmt.Errorf("societyops/mongo: get bill by period: %w", err)
	}
	return fromBillModel(&m)
}

func billFilter(opts billing.ListOpts) bson.M {
	filter := bson.M{}
	if !opts.FlatID.IsNil() {
		filter["flat_id"] = opts.FlatID.String()
	}
	if opts.Period != nil {
		filter["period_year"] = opts.Period.Year
		filter["period_month"] = int(opts.Period.Month)
	}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}
	return filter
}

func (s *Store) ListBills(ctx context.Context, opts billing.ListOpts) ([]*billing.Bill, error) {
	var models []billModel

	q := s.mdb.NewFind(&models).
		Filter(billFilter(opts)).
		Sort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("societyops/mongo: list bills: %w", err)
	}

	result := make([]*billing.Bill, len(models))
	for i := range models {
		b, err := fromBillModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = b
	}
	return result, nil
}

func (s *Store) BillTotals(ctx context.Context, opts billing.ListOpts) (*billing.Totals, error) {
	var models []billModel
	err := s.mdb.NewFind(&models).
		Filter(billFilter(opts)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("societyops/mongo: bill totals: %w", err)
	}

	totals := &billing.Totals{}
	for i := range models {
		b, err := fromBillModel(&models[i])
		if err != nil {
			return nil, err
		}
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

// ==================== Payment Store ====================

func (s *Store) RecordPayment(ctx context.Context, p *billing.Payment, paidAt time.Time, entry *activity.Entry) error {
	return s.inTx(ctx, func(ctx context.Context) error {
		// Guard on the observed status so a concurrent payment cannot
		// flip the bill twice.
		res, err := s.mdb.NewUpdate((*billModel)(nil)).
			Filter(bson.M{
				"_id":    p.BillID.String(),
				"status": string(billing.StatusUnpaid),
			}).
			Set("status", string(billing.StatusPaid)).
			Set("paid_at", paidAt).
			Set("updated_at", now()).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("societyops/mongo: mark bill paid: %w", err)
		}
		if res.MatchedCount() == 0 {
			var m billModel
			err := s.mdb.NewFind(&m).
				Filter(bson.M{"_id": p.BillID.String()}).
				Scan(ctx)
			if err != nil {
				if isNoDocuments(err) {
					return societyops.ErrBillNotFound
				}
				return fmt.Errorf("societyops/mongo: get bill: %w", err)
			}
			return societyops.ErrAlreadyPaid
		}

		if _, err := s.mdb.NewInsert(toPaymentModel(p)).Exec(ctx); err != nil {
			return fmt.Errorf("societyops/mongo: create payment: %w", err)
		}
		return s.appendActivity(ctx, entry)
	})
}

func (s *Store) GetPayment(ctx context.Context, paymentID id.PaymentID) (*billing.Payment, error) {
	var m paymentModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": paymentID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, societyops.ErrNotFound
		}
		return nil, fmt.Errorf("societyops/mongo: get payment: %w", err)
	}
	return fromPaymentModel(&m)
}

// ==================== Booking Store ====================

func (s *Store) CreateBooking(ctx context.Context, b *booking.Booking, entry *activity.Entry) error {
	m := toBookingModel(b)
	err := s.inTx(ctx, func(ctx context.Context) error {
		if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
			return err
		}
		return s.appendActivity(ctx, entry)
	})
	if mongo.IsDuplicateKeyError(err) {
		return societyops.ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("societyops/mongo: create booking: %w", err)
	}
	return nil
}

func (s *Store) GetBooking(ctx context.Context, bookingID id.BookingID) (*booking.Booking, error) {
	var m bookingModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": bookingID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, societyops.ErrBookingNotFound
		}
		return nil, fmt.Errorf("societyops/mongo: get booking: %w", err)
	}
	return fromBookingModel(&m)
}

func (s *Store) ListBookings(ctx context.Context, opts booking.ListOpts) ([]*booking.Booking, error) {
	var models []bookingModel

	filter := bson.M{}
	if opts.Amenity != "" {
		filter["amenity"] = opts.Amenity
	}
	if !opts.Date.IsZero() {
		filter["date"] = booking.Day(opts.Date).Format(booking.DateFormat)
	}
	if !opts.FlatID.IsNil() {
		filter["flat_id"] = opts.FlatID.String()
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "date", Value: 1}, {Key: "slot", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("societyops/mongo: list bookings: %w", err)
	}

	result := make([]*booking.Booking, len(models))
	for i := range models {
		b, err := fromBookingModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = b
	}
	return result, nil
}

// ==================== Visitor Store ====================

func (s *Store) CreateSession(ctx context.Context, sess *visitor.Session, entry *activity.Entry) error {
	m := toSessionModel(sess)
	err := s.inTx(ctx, func(ctx context.Context) error {
		if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
			return err
		}
		return s.appendActivity(ctx, entry)
	})
	if err != nil {
		return fmt.Errorf("societyops/mongo: create session: %w", err)
	}
	return nil
}

func (s *Store) CloseSession(ctx context.Context, sessionID id.SessionID, exitAt time.Time, entry *activity.Entry) error {
	return s.inTx(ctx, func(ctx context.Context) error {
		res, err := s.mdb.NewUpdate((*sessionModel)(nil)).
			Filter(bson.M{
				"_id":    sessionID.String(),
				"status": string(visitor.StatusIn),
			}).
			Set("status", string(visitor.StatusOut)).
			Set("exit_at", exitAt).
			Set("updated_at", now()).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("societyops/mongo: close session: %w", err)
		}
		if res.MatchedCount() == 0 {
			var m sessionModel
			err := s.mdb.NewFind(&m).
				Filter(bson.M{"_id": sessionID.String()}).
				Scan(ctx)
			if err != nil {
				if isNoDocuments(err) {
					return societyops.ErrSessionNotFound
				}
				return fmt.Errorf("societyops/mongo: get session: %w", err)
			}
			return societyops.ErrAlreadyOut
		}
		return s.appendActivity(ctx, entry)
	})
}

func (s *Store) GetSession(ctx context.Context, sessionID id.SessionID) (*visitor.Session, error) {
	var m sessionModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": sessionID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, societyops.ErrSessionNotFound
		}
		return nil, fmt.Errorf("societyops/mongo: get session: %w", err)
	}
	return fromSessionModel(&m)
}

func (s *Store) ListSessions(ctx context.Context, opts visitor.ListOpts) ([]*visitor.Session, error) {
	var models []sessionModel

	filter := bson.M{}
	if opts.Tower != "" {
		filter["tower"] = opts.Tower
	}
	if !opts.FlatID.IsNil() {
		filter["flat_id"] = opts.FlatID.String()
	}
	if opts.OpenOnly {
		filter["status"] = string(visitor.StatusIn)
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "entry_at", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("societyops/mongo: list sessions: %w", err)
	}

	result := make([]*visitor.Session, len(models))
	for i := range models {
		sess, err := fromSessionModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = sess
	}
	return result, nil
}

// ==================== Complaint Store ====================

func (s *Store) CreateComplaint(ctx context.Context, c *complaint.Complaint, entry *activity.Entry) error {
	m := toComplaintModel(c)
	err := s.inTx(ctx, func(ctx context.Context) error {
		if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
			return err
		}
		return s.appendActivity(ctx, entry)
	})
	if err != nil {
		return fmt.Errorf("societyops/mongo: create complaint: %w", err)
	}
	return nil
}

func (s *Store) AdvanceComplaint(ctx context.Context, complaintID id.ComplaintID, from, to complaint.Status, resolvedAt *time.Time, entry *activity.Entry) error {
	return s.inTx(ctx, func(ctx context.Context) error {
		update := s.mdb.NewUpdate((*complaintModel)(nil)).
			Filter(bson.M{
				"_id":    complaintID.String(),
				"status": string(from),
			}).
			Set("status", string(to)).
			Set("updated_at", now())
		if resolvedAt != nil {
			update = update.Set("resolved_at", *resolvedAt)
		}

		res, err := update.Exec(ctx)
		if err != nil {
			return fmt.Errorf("societyops/mongo: advance complaint: %w", err)
		}
		if res.MatchedCount() == 0 {
			var m complaintModel
			err := s.mdb.NewFind(&m).
				Filter(bson.M{"_id": complaintID.String()}).
				Scan(ctx)
			if err != nil {
				if isNoDocuments(err) {
					return societyops.ErrComplaintNotFound
				}
				return fmt.Errorf("societyops/mongo: get complaint: %w", err)
			}
			return societyops.ErrInvalidTransition
		}
		return s.appendActivity(ctx, entry)
	})
}

func (s *Store) GetComplaint(ctx context.Context, complaintID id.ComplaintID) (*complaint.Complaint, error) {
	var m complaintModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": complaintID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, societyops.ErrComplaintNotFound
		}
		return nil, fmt.Errorf("societyops/mongo: get complaint: %w", err)
	}
	return fromComplaintModel(&m)
}

func (s *Store) ListComplaints(ctx context.Context, opts complaint.ListOpts) ([]*complaint.Complaint, error) {
	var models []complaintModel

	filter := bson.M{}
	if !opts.FlatID.IsNil() {
		filter["flat_id"] = opts.FlatID.String()
	}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "created_at", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("societyops/mongo: list complaints: %w", err)
	}

	result := make([]*complaint.Complaint, len(models))
	for i := range models {
		c, err := fromComplaintModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = c
	}
	return result, nil
}

// ==================== Broadcast Store ====================

func (s *Store) CreateBroadcast(ctx context.Context, b *broadcast.Broadcast, entry *activity.Entry) error {
	m := toBroadcastModel(b)
	err := s.inTx(ctx, func(ctx context.Context) error {
		if _, err := s.mdb.NewInsert(m).Exec(ctx); err != nil {
			return err
		}
		return s.appendActivity(ctx, entry)
	})
	if err != nil {
		return fmt.Errorf("societyops/mongo: create broadcast: %w", err)
	}
	return nil
}

func (s *Store) GetBroadcast(ctx context.Context, broadcastID id.BroadcastID) (*broadcast.Broadcast, error) {
	var m broadcastModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": broadcastID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, societyops.ErrBroadcastNotFound
		}
		return nil, fmt.Errorf("societyops/mongo: get broadcast: %w", err)
	}
	return fromBroadcastModel(&m)
}

func (s *Store) ListBroadcasts(ctx context.Context, opts broadcast.ListOpts) ([]*broadcast.Broadcast, error) {
	var models []broadcastModel

	filter := bson.M{}
	if opts.Kind != "" {
		filter["kind"] = string(opts.Kind)
	}
	if opts.Tower != "" {
		filter["$or"] = bson.A{
			bson.M{"tower": opts.Tower},
			bson.M{"tower": ""},
		}
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "created_at", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("societyops/mongo: list broadcasts: %w", err)
	}

	result := make([]*broadcast.Broadcast, len(models))
	for i := range models {
		b, err := fromBroadcastModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = b
	}
	return result, nil
}

// ==================== Activity Store ====================

func (s *Store) appendActivity(ctx context.Context, entry *activity.Entry) error {
	if entry == nil {
		return nil
	}
	_, err := s.mdb.NewInsert(toActivityModel(entry)).Exec(ctx)
	return err
}

func (s *Store) ListActivity(ctx context.Context, opts activity.ListOpts) ([]*activity.Entry, error) {
	var models []activityModel

	filter := bson.M{}
	if opts.Actor != "" {
		filter["actor"] = opts.Actor
	}
	if opts.Action != "" {
		filter["action"] = string(opts.Action)
	}
	if !opts.Since.IsZero() || !opts.Until.IsZero() {
		ts := bson.M{}
		if !opts.Since.IsZero() {
			ts["$gte"] = opts.Since
		}
		if !opts.Until.IsZero() {
			ts["$lte"] = opts.Until
		}
		filter["timestamp"] = ts
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("societyops/mongo: list activity: %w", err)
	}

	result := make([]*activity.Entry, len(models))
	for i := range models {
		e, err := fromActivityModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = e
	}
	return result, nil
}

func (s *Store) CountActivity(ctx context.Context, action activity.Action) (int64, error) {
	filter := bson.M{}
	if action != "" {
		filter["action"] = string(action)
	}
	total, err := s.mdb.Collection(colActivity).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("societyops/mongo: count activity: %w", err)
	}
	return total, nil
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all society collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colFlats: {
			{
				Keys:    bson.D{{Key: "tower", Value: 1}, {Key: "number", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		colBills: {
			{
				Keys:    bson.D{{Key: "flat_id", Value: 1}, {Key: "period_year", Value: 1}, {Key: "period_month", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "period_year", Value: 1}, {Key: "period_month", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		colPayments: {
			{Keys: bson.D{{Key: "bill_id", Value: 1}}},
		},
		colBookings: {
			{
				Keys:    bson.D{{Key: "amenity", Value: 1}, {Key: "date", Value: 1}, {Key: "slot", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "flat_id", Value: 1}}},
			{Keys: bson.D{{Key: "date", Value: 1}}},
		},
		colSessions: {
			{Keys: bson.D{{Key: "tower", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "flat_id", Value: 1}}},
		},
		colComplaints: {
			{Keys: bson.D{{Key: "flat_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		colActivity: {
			{Keys: bson.D{{Key: "action", Value: 1}, {Key: "timestamp", Value: 1}}},
			{Keys: bson.D{{Key: "timestamp", Value: 1}}},
		},
	}
}
