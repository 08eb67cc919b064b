// Package sqlite implements the society store on SQLite via Grove ORM.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"
	"github.com/xraph/grove/migrate"

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

// compile-time interface check
var _ societystore.Store = (*Store)(nil)

// Store implements store.Store using SQLite via Grove ORM.
type Store struct {
	db  *grove.DB
	sdb *sqlitedriver.SqliteDB
}

// New creates a new SQLite store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		sdb: sqlitedriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables and indexes using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.sdb)
	if err != nil {
		return fmt.Errorf("societyops/sqlite: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("societyops/sqlite: migration failed: %w", err)
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

// runInTx executes fn inside a database transaction. The transaction
// commits only if fn returns nil; any error rolls it back.
func (s *Store) runInTx(ctx context.Context, fn func(ctx context.Context, tx *sqlitedriver.SqliteTx) error) error {
	tx, err := s.sdb.BeginTxQuery(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ==================== Flat Store ====================

func (s *Store) CreateFlat(ctx context.Context, f *flat.Flat, entry *activity.Entry) error {
	m := toFlatModel(f)
	err := s.runInTx(ctx, func(ctx context.Context, tx *sqlitedriver.SqliteTx) error {
		if _, err := tx.NewInsert(m).Exec(ctx); err != nil {
			return err
		}
		return appendActivity(ctx, tx, entry)
	})
	if isUniqueViolation(err) {
		return societyops.ErrFlatExists
	}
	return err
}

func (s *Store) GetFlat(ctx context.Context, flatID id.FlatID) (*flat.Flat, error) {
	m := new(flatModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", flatID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, societyops.ErrFlatNotFound
		}
		return nil, err
	}
	return fromFlatModel(m)
}

func (s *Store) ListFlats(ctx context.Context, opts flat.ListOpts) ([]*flat.Flat, error) {
	var models []flatModel
	q := s.sdb.NewSelect(&models)

	if opts.Tower != "" {
		q = q.Where("tower = ?", opts.Tower)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("tower ASC, number ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	err := s.runInTx(ctx, func(ctx context.Context, tx *sqlitedriver.SqliteTx) error {
		if _, err := tx.NewInsert(m).Exec(ctx); err != nil {
			return err
		}
		return appendActivity(ctx, tx, entry)
	})
	if isUniqueViolation(err) {
		return societyops.ErrBillExists
	}
	return err
}

func (s *Store) GetBill(ctx context.Context, billID id.BillID) (*billing.Bill, error) {
	m := new(billModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", billID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, societyops.ErrBillNotFound
		}
		return nil, err
	}
	return fromBillModel(m)
}

func (s *Store) GetBillByPeriod(ctx context.Context, flatID id.FlatID, period billing.Period) (*billing.Bill, error) {
	m := new(billModel)
	err := s.sdb.NewSelect(m).
		Where("flat_id = ?", flatID.String()).
		Where("period_year = ?", period.Year).
		Where("period_month = ?", int(period.Month)).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, societyops.ErrBillNotFound
		}
		return nil, err
	}
	return fromBillModel(m)
}

func (s *Store) ListBills(ctx context.Context, opts billing.ListOpts) ([]*billing.Bill, error) {
	var models []billModel
	q := s.sdb.NewSelect(&models)

	if !opts.FlatID.IsNil() {
		q = q.Where("flat_id = ?", opts.FlatID.String())
	}
	if opts.Period != nil {
		q = q.Where("period_year = ?", opts.Period.Year).
			Where("period_month = ?", int(opts.Period.Month))
	}
	if opts.Status != "" {
		q = q.Where("status = ?", string(opts.Status))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC, id ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	q := s.sdb.NewSelect(&models)

	if !opts.FlatID.IsNil() {
		q = q.Where("flat_id = ?", opts.FlatID.String())
	}
	if opts.Period != nil {
		q = q.Where("period_year = ?", opts.Period.Year).
			Where("period_month = ?", int(opts.Period.Month))
	}
	if opts.Status != "" {
		q = q.Where("status = ?", string(opts.Status))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	return s.runInTx(ctx, func(ctx context.Context, tx *sqlitedriver.SqliteTx) error {
		bill := new(billModel)
		err := tx.NewSelect(bill).
			Where("id = ?", p.BillID.String()).
			Scan(ctx)
		if err != nil {
			if isNoRows(err) {
				return societyops.ErrBillNotFound
			}
			return err
		}
		if bill.Status == string(billing.StatusPaid) {
			return societyops.ErrAlreadyPaid
		}

		// Guard on the observed status so a concurrent payment
		// cannot flip the bill twice.
		res, err := tx.NewUpdate((*billModel)(nil)).
			Set("status = ?", string(billing.StatusPaid)).
			Set("paid_at = ?", paidAt).
			Set("updated_at = ?", now()).
			Where("id = ?", p.BillID.String()).
			Where("status = ?", string(billing.StatusUnpaid)).
			Exec(ctx)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return societyops.ErrAlreadyPaid
		}

		if _, err := tx.NewInsert(toPaymentModel(p)).Exec(ctx); err != nil {
			return err
		}
		return appendActivity(ctx, tx, entry)
	})
}

func (s *Store) GetPayment(ctx context.Context, paymentID id.PaymentID) (*billing.Payment, error) {
	m := new(paymentModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", paymentID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, societyops.ErrNotFound
		}
		return nil, err
	}
	return fromPaymentModel(m)
}

// ==================== Booking Store ====================

func (s *Store) CreateBooking(ctx context.Context, b *booking.Booking, entry *activity.Entry) error {
	m := toBookingModel(b)
	err := s.runInTx(ctx, func(ctx context.Context, tx *sqlitedriver.SqliteTx) error {
		if _, err := tx.NewInsert(m).Exec(ctx); err != nil {
			return err
		}
		return appendActivity(ctx, tx, entry)
	})
	if isUniqueViolation(err) {
		return societyops.ErrSlotTaken
	}
	return err
}

func (s *Store) GetBooking(ctx context.Context, bookingID id.BookingID) (*booking.Booking, error) {
	m := new(bookingModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", bookingID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, societyops.ErrBookingNotFound
		}
		return nil, err
	}
	return fromBookingModel(m)
}

func (s *Store) ListBookings(ctx context.Context, opts booking.ListOpts) ([]*booking.Booking, error) {
	var models []bookingModel
	q := s.sdb.NewSelect(&models)

	if opts.Amenity != "" {
		q = q.Where("amenity = ?", opts.Amenity)
	}
	if !opts.Date.IsZero() {
		q = q.Where("date = ?", booking.Day(opts.Date).Format(booking.DateFormat))
	}
	if !opts.FlatID.IsNil() {
		q = q.Where("flat_id = ?", opts.FlatID.String())
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("date ASC, slot ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	return s.runInTx(ctx, func(ctx context.Context, tx *sqlitedriver.SqliteTx) error {
		if _, err := tx.NewInsert(m).Exec(ctx); err != nil {
			return err
		}
		return appendActivity(ctx, tx, entry)
	})
}

func (s *Store) CloseSession(ctx context.Context, sessionID id.SessionID, exitAt time.Time, entry *activity.Entry) error {
	return s.runInTx(ctx, func(ctx context.Context, tx *sqlitedriver.SqliteTx) error {
		res, err := tx.NewUpdate((*sessionModel)(nil)).
			Set("status = ?", string(visitor.StatusOut)).
			Set("exit_at = ?", exitAt).
			Set("updated_at = ?", now()).
			Where("id = ?", sessionID.String()).
			Where("status = ?", string(visitor.StatusIn)).
			Exec(ctx)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			// Distinguish a missing session from a finished one.
			exists := new(sessionModel)
			err := tx.NewSelect(exists).
				Where("id = ?", sessionID.String()).
				Scan(ctx)
			if err != nil {
				if isNoRows(err) {
					return societyops.ErrSessionNotFound
				}
				return err
			}
			return societyops.ErrAlreadyOut
		}
		return appendActivity(ctx, tx, entry)
	})
}

func (s *Store) GetSession(ctx context.Context, sessionID id.SessionID) (*visitor.Session, error) {
	m := new(sessionModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", sessionID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, societyops.ErrSessionNotFound
		}
		return nil, err
	}
	return fromSessionModel(m)
}

func (s *Store) ListSessions(ctx context.Context, opts visitor.ListOpts) ([]*visitor.Session, error) {
	var models []sessionModel
	q := s.sdb.NewSelect(&models)

	if opts.Tower != "" {
		q = q.Where("tower = ?", opts.Tower)
	}
	if !opts.FlatID.IsNil() {
		q = q.Where("flat_id = ?", opts.FlatID.String())
	}
	if opts.OpenOnly {
		q = q.Where("status = ?", string(visitor.StatusIn))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("entry_at ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	return s.runInTx(ctx, func(ctx context.Context, tx *sqlitedriver.SqliteTx) error {
		if _, err := tx.NewInsert(m).Exec(ctx); err != nil {
			return err
		}
		return appendActivity(ctx, tx, entry)
	})
}

func (s *Store) AdvanceComplaint(ctx context.Context, complaintID id.ComplaintID, from, to complaint.Status, resolvedAt *time.Time, entry *activity.Entry) error {
	return s.runInTx(ctx, func(ctx context.Context, tx *sqlitedriver.SqliteTx) error {
		res, err := tx.NewUpdate((*complaintModel)(nil)).
			Set("status = ?", string(to)).
			Set("resolved_at = ?", resolvedAt).
			Set("updated_at = ?", now()).
			Where("id = ?", complaintID.String()).
			Where("status = ?", string(from)).
			Exec(ctx)
		if err != nil {
			return err
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			exists := new(complaintModel)
			err := tx.NewSelect(exists).
				Where("id = ?", complaintID.String()).
				Scan(ctx)
			if err != nil {
				if isNoRows(err) {
					return societyops.ErrComplaintNotFound
				}
				return err
			}
			return societyops.ErrInvalidTransition
		}
		return appendActivity(ctx, tx, entry)
	})
}

func (s *Store) GetComplaint(ctx context.Context, complaintID id.ComplaintID) (*complaint.Complaint, error) {
	m := new(complaintModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", complaintID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, societyops.ErrComplaintNotFound
		}
		return nil, err
	}
	return fromComplaintModel(m)
}

func (s *Store) ListComplaints(ctx context.Context, opts complaint.ListOpts) ([]*complaint.Complaint, error) {
	var models []complaintModel
	q := s.sdb.NewSelect(&models)

	if !opts.FlatID.IsNil() {
		q = q.Where("flat_id = ?", opts.FlatID.String())
	}
	if opts.Status != "" {
		q = q.Where("status = ?", string(opts.Status))
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	return s.runInTx(ctx, func(ctx context.Context, tx *sqlitedriver.SqliteTx) error {
		if _, err := tx.NewInsert(m).Exec(ctx); err != nil {
			return err
		}
		return appendActivity(ctx, tx, entry)
	})
}

func (s *Store) GetBroadcast(ctx context.Context, broadcastID id.BroadcastID) (*broadcast.Broadcast, error) {
	m := new(broadcastModel)
	err := s.sdb.NewSelect(m).
		Where("id = ?", broadcastID.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, societyops.ErrBroadcastNotFound
		}
		return nil, err
	}
	return fromBroadcastModel(m)
}

func (s *Store) ListBroadcasts(ctx context.Context, opts broadcast.ListOpts) ([]*broadcast.Broadcast, error) {
	var models []broadcastModel
	q := s.sdb.NewSelect(&models)

	if opts.Kind != "" {
		q = q.Where("kind = ?", string(opts.Kind))
	}
	if opts.Tower != "" {
		q = q.Where("(tower = ? OR tower = '')", opts.Tower)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("created_at ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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

func (s *Store) ListActivity(ctx context.Context, opts activity.ListOpts) ([]*activity.Entry, error) {
	var models []activityModel
	q := s.sdb.NewSelect(&models)

	if opts.Actor != "" {
		q = q.Where("actor = ?", opts.Actor)
	}
	if opts.Action != "" {
		q = q.Where("action = ?", string(opts.Action))
	}
	if !opts.Since.IsZero() {
		q = q.Where("timestamp >= ?", opts.Since)
	}
	if !opts.Until.IsZero() {
		q = q.Where("timestamp <= ?", opts.Until)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	q = q.OrderExpr("timestamp ASC, id ASC")

	if err := q.Scan(ctx); err != nil {
		return nil, err
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
	var total int64
	var err error
	if action == "" {
		err = s.sdb.NewRaw(`SELECT COUNT(*) FROM society_activity_log`).Scan(ctx, &total)
	} else {
		err = s.sdb.NewRaw(`SELECT COUNT(*) FROM society_activity_log WHERE action = ?`, string(action)).Scan(ctx, &total)
	}
	if err != nil {
		return 0, err
	}
	return total, nil
}

// ==================== Helpers ====================

// appendActivity inserts the log entry inside the caller's transaction.
func appendActivity(ctx context.Context, tx *sqlitedriver.SqliteTx, entry *activity.Entry) error {
	if entry == nil {
		return nil
	}
	_, err := tx.NewInsert(toActivityModel(entry)).Exec(ctx)
	return err
}

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation checks for a SQLite unique index violation.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
