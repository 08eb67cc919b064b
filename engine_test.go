package societyops_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	societyops "github.com/towertech/societyops"
	"github.com/towertech/societyops/activity"
	"github.com/towertech/societyops/billing"
	"github.com/towertech/societyops/booking"
	"github.com/towertech/societyops/broadcast"
	"github.com/towertech/societyops/complaint"
	"github.com/towertech/societyops/flat"
	"github.com/towertech/societyops/id"
	"github.com/towertech/societyops/store/memory"
	"github.com/towertech/societyops/visitor"
)

func newTestEngine(t *testing.T, opts ...societyops.Option) *societyops.Engine {
	t.Helper()

	eng := societyops.New(memory.New(), opts...)
	if err := eng.Start(context.Background()); err != nil {
		t.Fatalf("start engine: %v", err)
	}
	return eng
}

func registerFlat(t *testing.T, eng *societyops.Engine, tower, number string) *flat.Flat {
	t.Helper()

	f := &flat.Flat{Tower: tower, Number: number, Floor: 1, OwnerName: "Resident " + number}
	if err := eng.RegisterFlat(context.Background(), f); err != nil {
		t.Fatalf("register flat %s-%s: %v", tower, number, err)
	}
	return f
}

// ──────────────────────────────────────────────────
// Flat registry
// ──────────────────────────────────────────────────

func TestRegisterFlat(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	f := registerFlat(t, eng, "A", "101")
	if f.ID.IsNil() {
		t.Fatal("expected flat ID to be assigned")
	}

	got, err := eng.GetFlat(ctx, f.ID)
	if err != nil {
		t.Fatalf("get flat: %v", err)
	}
	if got.Label() != "A-101" {
		t.Errorf("label = %q, want %q", got.Label(), "A-101")
	}
}

func TestRegisterFlatDuplicateUnit(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	registerFlat(t, eng, "A", "101")

	dup := &flat.Flat{Tower: "A", Number: "101"}
	err := eng.RegisterFlat(ctx, dup)
	if !errors.Is(err, societyops.ErrFlatExists) {
		t.Fatalf("err = %v, want ErrFlatExists", err)
	}
	if !societyops.IsConflict(err) {
		t.Error("expected IsConflict to report true")
	}
}

func TestRegisterFlatValidation(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	if err := eng.RegisterFlat(ctx, &flat.Flat{Number: "101"}); err == nil {
		t.Error("expected error for missing tower")
	}
	if err := eng.RegisterFlat(ctx, &flat.Flat{Tower: "A"}); err == nil {
		t.Error("expected error for missing number")
	}
}

func TestListFlatsByTower(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	registerFlat(t, eng, "A", "101")
	registerFlat(t, eng, "A", "102")
	registerFlat(t, eng, "B", "101")

	flats, err := eng.ListFlats(ctx, flat.ListOpts{Tower: "A"})
	if err != nil {
		t.Fatalf("list flats: %v", err)
	}
	if len(flats) != 2 {
		t.Fatalf("got %d flats in tower A, want 2", len(flats))
	}
}

// ──────────────────────────────────────────────────
// Billing
// ──────────────────────────────────────────────────

func TestGenerateBillsIdempotent(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	registerFlat(t, eng, "A", "101")
	registerFlat(t, eng, "A", "102")
	registerFlat(t, eng, "B", "201")

	period := billing.Period{Month: time.March, Year: 2026}
	due := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	first, err := eng.GenerateBills(ctx, period, societyops.INR(350000), due)
	if err != nil {
		t.Fatalf("first generation: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("got %d bills, want 3", len(first))
	}

	// Running generation again must create nothing new.
	second, err := eng.GenerateBills(ctx, period, societyops.INR(350000), due)
	if err != nil {
		t.Fatalf("second generation: %v", err)
	}
	if len(second) != 3 {
		t.Fatalf("got %d bills after rerun, want 3", len(second))
	}

	ids := make(map[string]bool, len(first))
	for _, b := range first {
		ids[b.ID.String()] = true
	}
	for _, b := range second {
		if !ids[b.ID.String()] {
			t.Errorf("rerun produced new bill %s", b.ID)
		}
	}
}

func TestGenerateBillsFillsLateFlats(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	registerFlat(t, eng, "A", "101")

	period := billing.Period{Month: time.April, Year: 2026}
	due := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)

	bills, err := eng.GenerateBills(ctx, period, societyops.INR(350000), due)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(bills) != 1 {
		t.Fatalf("got %d bills, want 1", len(bills))
	}

	// A flat registered after the first run gets its bill on retry,
	// without touching existing ones.
	registerFlat(t, eng, "A", "102")

	bills, err = eng.GenerateBills(ctx, period, societyops.INR(350000), due)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if len(bills) != 2 {
		t.Fatalf("got %d bills after retry, want 2", len(bills))
	}
}

func TestGenerateBillsValidation(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	_, err := eng.GenerateBills(ctx, billing.Period{Month: 13, Year: 2026}, societyops.INR(100), time.Now())
	if err == nil {
		t.Error("expected error for invalid month")
	}

	_, err = eng.GenerateBills(ctx, billing.Period{Month: time.May, Year: 2026}, societyops.INR(0), time.Now())
	if err == nil {
		t.Error("expected error for non-positive amount")
	}
}

func TestRecordPaymentExactlyOnce(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	registerFlat(t, eng, "A", "101")
	period := billing.Period{Month: time.March, Year: 2026}
	bills, err := eng.GenerateBills(ctx, period, societyops.INR(350000),
		time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	billID := bills[0].ID

	p, err := eng.RecordPayment(ctx, billID, billing.ModeUPI, "ref-001")
	if err != nil {
		t.Fatalf("record payment: %v", err)
	}
	if p.BillID != billID {
		t.Errorf("payment bill = %s, want %s", p.BillID, billID)
	}

	b, err := eng.GetBill(ctx, billID)
	if err != nil {
		t.Fatalf("get bill: %v", err)
	}
	if b.Status != billing.StatusPaid {
		t.Errorf("bill status = %s, want paid", b.Status)
	}
	if b.PaidAt == nil {
		t.Error("expected PaidAt to be set")
	}

	// A second payment attempt must be rejected.
	_, err = eng.RecordPayment(ctx, billID, billing.ModeCash, "ref-002")
	if !errors.Is(err, societyops.ErrAlreadyPaid) {
		t.Fatalf("err = %v, want ErrAlreadyPaid", err)
	}
}

func TestRecordPaymentUnknownBill(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.RecordPayment(context.Background(), id.NewBillID(), billing.ModeOnline, "ref")
	if !errors.Is(err, societyops.ErrBillNotFound) {
		t.Fatalf("err = %v, want ErrBillNotFound", err)
	}
	if !societyops.IsNotFound(err) {
		t.Error("expected IsNotFound to report true")
	}
}

func TestRecordPaymentInvalidMode(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.RecordPayment(context.Background(), id.NewBillID(), billing.Mode("barter"), "ref")
	if err == nil {
		t.Fatal("expected error for unknown payment mode")
	}
}

func TestFlatStatusDerivation(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	f := registerFlat(t, eng, "A", "101")

	// No bills: clear.
	status, err := eng.FlatStatus(ctx, f.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status != flat.StatusClear {
		t.Errorf("status = %s, want clear", status)
	}

	period := billing.Period{Month: time.March, Year: 2026}
	bills, err := eng.GenerateBills(ctx, period, societyops.INR(350000),
		time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Latest bill unpaid: due.
	status, err = eng.FlatStatus(ctx, f.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status != flat.StatusDue {
		t.Errorf("status = %s, want due", status)
	}

	if _, err := eng.RecordPayment(ctx, bills[0].ID, billing.ModeUPI, "ref"); err != nil {
		t.Fatalf("pay: %v", err)
	}

	// Latest bill paid: clear again.
	status, err = eng.FlatStatus(ctx, f.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status != flat.StatusClear {
		t.Errorf("status = %s, want clear", status)
	}
}

func TestBillTotals(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	registerFlat(t, eng, "A", "101")
	registerFlat(t, eng, "A", "102")

	period := billing.Period{Month: time.March, Year: 2026}
	bills, err := eng.GenerateBills(ctx, period, societyops.INR(100000),
		time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := eng.RecordPayment(ctx, bills[0].ID, billing.ModeUPI, "ref"); err != nil {
		t.Fatalf("pay: %v", err)
	}

	totals, err := eng.BillTotals(ctx, billing.ListOpts{Period: &period})
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if totals.Bills != 2 || totals.Paid != 1 || totals.Unpaid != 1 {
		t.Errorf("counts = %d/%d/%d, want 2/1/1", totals.Bills, totals.Paid, totals.Unpaid)
	}
	if totals.Billed.Amount != 200000 {
		t.Errorf("billed = %d, want 200000", totals.Billed.Amount)
	}
	if totals.Collected.Amount != 100000 {
		t.Errorf("collected = %d, want 100000", totals.Collected.Amount)
	}
	if totals.Outstanding.Amount != 100000 {
		t.Errorf("outstanding = %d, want 100000", totals.Outstanding.Amount)
	}
}

// ──────────────────────────────────────────────────
// Amenity booking
// ──────────────────────────────────────────────────

func TestRequestBookingConflict(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	f1 := registerFlat(t, eng, "A", "101")
	f2 := registerFlat(t, eng, "A", "102")

	date := time.Now().UTC().AddDate(0, 0, 7)

	b, err := eng.RequestBooking(ctx, "Clubhouse", date, booking.Slot1012, f1.ID)
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if b.Date != booking.Day(date) {
		t.Errorf("date not truncated to day: %v", b.Date)
	}

	_, err = eng.RequestBooking(ctx, "Clubhouse", date, booking.Slot1012, f2.ID)
	if !errors.Is(err, societyops.ErrSlotTaken) {
		t.Fatalf("err = %v, want ErrSlotTaken", err)
	}

	// A different slot on the same date is free.
	if _, err := eng.RequestBooking(ctx, "Clubhouse", date, booking.Slot1214, f2.ID); err != nil {
		t.Fatalf("different slot: %v", err)
	}

	// A different amenity in the same slot is free.
	if _, err := eng.RequestBooking(ctx, "Tennis Court", date, booking.Slot1012, f2.ID); err != nil {
		t.Fatalf("different amenity: %v", err)
	}
}

func TestRequestBookingConcurrentSameSlot(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	f := registerFlat(t, eng, "A", "101")
	date := time.Now().UTC().AddDate(0, 0, 3)

	const racers = 16
	var wg sync.WaitGroup
	errs := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = eng.RequestBooking(ctx, "Gym", date, booking.Slot0608, f.ID)
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case errors.Is(err, societyops.ErrSlotTaken):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if won != 1 {
		t.Fatalf("%d bookings won the slot, want exactly 1", won)
	}
}

func TestRequestBookingRejections(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	f := registerFlat(t, eng, "A", "101")
	future := time.Now().UTC().AddDate(0, 0, 1)

	if _, err := eng.RequestBooking(ctx, "Gym", future, booking.Slot("11:00 AM - 01:00 PM"), f.ID); !errors.Is(err, societyops.ErrInvalidSlot) {
		t.Errorf("err = %v, want ErrInvalidSlot", err)
	}

	past := time.Now().UTC().AddDate(0, 0, -1)
	if _, err := eng.RequestBooking(ctx, "Gym", past, booking.Slot0608, f.ID); !errors.Is(err, societyops.ErrPastDate) {
		t.Errorf("err = %v, want ErrPastDate", err)
	}

	if _, err := eng.RequestBooking(ctx, "Gym", future, booking.Slot0608, id.NewFlatID()); !errors.Is(err, societyops.ErrFlatNotFound) {
		t.Errorf("err = %v, want ErrFlatNotFound", err)
	}

	if _, err := eng.RequestBooking(ctx, "   ", future, booking.Slot0608, f.ID); err == nil {
		t.Error("expected error for blank amenity")
	}
}

func TestRequestBookingTodayAllowed(t *testing.T) {
	fixed := time.Date(2026, time.June, 15, 14, 30, 0, 0, time.UTC)
	eng := newTestEngine(t, societyops.WithClock(func() time.Time { return fixed }))

	f := registerFlat(t, eng, "A", "101")

	// Same-day bookings are allowed even late in the day.
	if _, err := eng.RequestBooking(context.Background(), "Gym", fixed, booking.Slot0608, f.ID); err != nil {
		t.Fatalf("same-day booking: %v", err)
	}
}

// ──────────────────────────────────────────────────
// Visitor tracking
// ──────────────────────────────────────────────────

func TestVisitorCheckInOut(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	f := registerFlat(t, eng, "A", "101")

	sess, err := eng.CheckIn(ctx, "Ravi Kumar", "", f.ID)
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if sess.Status != visitor.StatusIn {
		t.Errorf("status = %s, want in", sess.Status)
	}
	if sess.Tower != "A" {
		t.Errorf("tower = %q, want flat tower %q", sess.Tower, "A")
	}
	if !sess.Open() {
		t.Error("expected session to be open")
	}

	closed, err := eng.CheckOut(ctx, sess.ID)
	if err != nil {
		t.Fatalf("check out: %v", err)
	}
	if closed.Status != visitor.StatusOut {
		t.Errorf("status = %s, want out", closed.Status)
	}
	if closed.ExitAt == nil {
		t.Fatal("expected ExitAt to be set")
	}

	// Checking out twice must not move the recorded exit time.
	_, err = eng.CheckOut(ctx, sess.ID)
	if !errors.Is(err, societyops.ErrAlreadyOut) {
		t.Fatalf("err = %v, want ErrAlreadyOut", err)
	}

	again, err := eng.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if !again.ExitAt.Equal(*closed.ExitAt) {
		t.Error("exit time changed on rejected second check-out")
	}
}

func TestVisitorSameNameMultipleSessions(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	f := registerFlat(t, eng, "A", "101")

	s1, err := eng.CheckIn(ctx, "Courier", "", f.ID)
	if err != nil {
		t.Fatalf("check in 1: %v", err)
	}
	s2, err := eng.CheckIn(ctx, "Courier", "", f.ID)
	if err != nil {
		t.Fatalf("check in 2: %v", err)
	}
	if s1.ID == s2.ID {
		t.Fatal("expected distinct session IDs for same visitor name")
	}
}

func TestListOpenSessions(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	fa := registerFlat(t, eng, "A", "101")
	fb := registerFlat(t, eng, "B", "201")

	s1, _ := eng.CheckIn(ctx, "Guest One", "", fa.ID)
	if _, err := eng.CheckIn(ctx, "Guest Two", "", fb.ID); err != nil {
		t.Fatalf("check in: %v", err)
	}

	open, err := eng.ListOpenSessions(ctx, "")
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 2 {
		t.Fatalf("got %d open sessions, want 2", len(open))
	}

	if _, err := eng.CheckOut(ctx, s1.ID); err != nil {
		t.Fatalf("check out: %v", err)
	}

	open, err = eng.ListOpenSessions(ctx, "")
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("got %d open sessions after checkout, want 1", len(open))
	}

	towerB, err := eng.ListOpenSessions(ctx, "B")
	if err != nil {
		t.Fatalf("list tower B: %v", err)
	}
	if len(towerB) != 1 {
		t.Fatalf("got %d open sessions in tower B, want 1", len(towerB))
	}
}

// ──────────────────────────────────────────────────
// Complaints
// ──────────────────────────────────────────────────

func TestComplaintForwardOnly(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	f := registerFlat(t, eng, "A", "101")

	c := &complaint.Complaint{FlatID: f.ID, Title: "Lift stuck", Category: "maintenance"}
	if err := eng.RaiseComplaint(ctx, c); err != nil {
		t.Fatalf("raise: %v", err)
	}
	if c.Status != complaint.StatusPending {
		t.Errorf("status = %s, want pending", c.Status)
	}

	got, err := eng.AdvanceComplaint(ctx, c.ID, complaint.StatusInProgress)
	if err != nil {
		t.Fatalf("advance to in_progress: %v", err)
	}
	if got.Status != complaint.StatusInProgress {
		t.Errorf("status = %s, want in_progress", got.Status)
	}

	// Backward and no-op transitions are rejected.
	if _, err := eng.AdvanceComplaint(ctx, c.ID, complaint.StatusPending); !errors.Is(err, societyops.ErrInvalidTransition) {
		t.Errorf("backward err = %v, want ErrInvalidTransition", err)
	}
	if _, err := eng.AdvanceComplaint(ctx, c.ID, complaint.StatusInProgress); !errors.Is(err, societyops.ErrInvalidTransition) {
		t.Errorf("no-op err = %v, want ErrInvalidTransition", err)
	}

	got, err = eng.AdvanceComplaint(ctx, c.ID, complaint.StatusResolved)
	if err != nil {
		t.Fatalf("advance to resolved: %v", err)
	}
	if got.ResolvedAt == nil {
		t.Error("expected ResolvedAt to be set")
	}

	if _, err := eng.AdvanceComplaint(ctx, c.ID, complaint.StatusResolved); !errors.Is(err, societyops.ErrInvalidTransition) {
		t.Errorf("resolved no-op err = %v, want ErrInvalidTransition", err)
	}
}

func TestComplaintSkipForward(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	f := registerFlat(t, eng, "A", "101")

	c := &complaint.Complaint{FlatID: f.ID, Title: "Broken gate latch"}
	if err := eng.RaiseComplaint(ctx, c); err != nil {
		t.Fatalf("raise: %v", err)
	}

	// Pending -> Resolved directly is a legal forward skip.
	got, err := eng.AdvanceComplaint(ctx, c.ID, complaint.StatusResolved)
	if err != nil {
		t.Fatalf("skip to resolved: %v", err)
	}
	if got.Status != complaint.StatusResolved {
		t.Errorf("status = %s, want resolved", got.Status)
	}
	if got.ResolvedAt == nil {
		t.Error("expected ResolvedAt to be set")
	}
}

func TestRaiseComplaintUnknownFlat(t *testing.T) {
	eng := newTestEngine(t)

	c := &complaint.Complaint{FlatID: id.NewFlatID(), Title: "Noise"}
	err := eng.RaiseComplaint(context.Background(), c)
	if !errors.Is(err, societyops.ErrFlatNotFound) {
		t.Fatalf("err = %v, want ErrFlatNotFound", err)
	}
}

// ──────────────────────────────────────────────────
// Broadcasts
// ──────────────────────────────────────────────────

func TestCreateBroadcastDefaults(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	b := &broadcast.Broadcast{Title: "Water shutdown", Message: "Tank cleaning 10-12"}
	if err := eng.CreateBroadcast(ctx, b); err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Kind != broadcast.KindNotice {
		t.Errorf("kind = %s, want notice", b.Kind)
	}
	if b.Severity != broadcast.SeverityInfo {
		t.Errorf("severity = %s, want info", b.Severity)
	}
}

func TestListBroadcastsTowerScoped(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	all := &broadcast.Broadcast{Title: "Society AGM", Kind: broadcast.KindEvent}
	towerA := &broadcast.Broadcast{Title: "Tower A lift down", Tower: "A", Kind: broadcast.KindAlert, Severity: broadcast.SeverityWarning}
	towerB := &broadcast.Broadcast{Title: "Tower B painting", Tower: "B"}

	for _, b := range []*broadcast.Broadcast{all, towerA, towerB} {
		if err := eng.CreateBroadcast(ctx, b); err != nil {
			t.Fatalf("create %q: %v", b.Title, err)
		}
	}

	// Tower filter returns that tower's broadcasts plus society-wide ones.
	got, err := eng.ListBroadcasts(ctx, broadcast.ListOpts{Tower: "A"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d broadcasts for tower A, want 2", len(got))
	}
}

// ──────────────────────────────────────────────────
// Activity log
// ──────────────────────────────────────────────────

func TestActivityLogCompleteness(t *testing.T) {
	eng := newTestEngine(t)
	ctx := societyops.WithActor(context.Background(), "secretary")

	f := registerMust(t, eng, ctx, "A", "101")

	period := billing.Period{Month: time.March, Year: 2026}
	bills, err := eng.GenerateBills(ctx, period, societyops.INR(350000),
		time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := eng.RecordPayment(ctx, bills[0].ID, billing.ModeUPI, "ref"); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if _, err := eng.RequestBooking(ctx, "Gym", time.Now().UTC().AddDate(0, 0, 1), booking.Slot0608, f.ID); err != nil {
		t.Fatalf("book: %v", err)
	}
	sess, err := eng.CheckIn(ctx, "Guest", "", f.ID)
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	if _, err := eng.CheckOut(ctx, sess.ID); err != nil {
		t.Fatalf("check out: %v", err)
	}

	// One entry per successful mutation: register, bill, payment,
	// booking, check-in, check-out.
	total, err := eng.CountActivity(ctx, "")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 6 {
		t.Fatalf("activity count = %d, want 6", total)
	}

	entries, err := eng.ListActivity(ctx, activity.ListOpts{Actor: "secretary"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 6 {
		t.Fatalf("got %d entries for actor, want 6", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.Before(entries[i-1].Timestamp) {
			t.Fatal("activity log not in timestamp order")
		}
	}
}

func TestFailedMutationLeavesNoActivity(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	registerFlat(t, eng, "A", "101")
	before, err := eng.CountActivity(ctx, "")
	if err != nil {
		t.Fatalf("count: %v", err)
	}

	// Duplicate registration fails and must not be logged.
	if err := eng.RegisterFlat(ctx, &flat.Flat{Tower: "A", Number: "101"}); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}

	after, err := eng.CountActivity(ctx, "")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if after != before {
		t.Fatalf("activity count changed on failed mutation: %d -> %d", before, after)
	}
}

func TestCountActivityByAction(t *testing.T) {
	eng := newTestEngine(t)
	ctx := context.Background()

	registerFlat(t, eng, "A", "101")
	registerFlat(t, eng, "A", "102")

	n, err := eng.CountActivity(ctx, activity.ActionFlatRegistered)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
}

func registerMust(t *testing.T, eng *societyops.Engine, ctx context.Context, tower, number string) *flat.Flat {
	t.Helper()

	f := &flat.Flat{Tower: tower, Number: number}
	if err := eng.RegisterFlat(ctx, f); err != nil {
		t.Fatalf("register flat: %v", err)
	}
	return f
}
