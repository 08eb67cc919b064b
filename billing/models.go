package billing

import (
	"fmt"
	"time"

	"github.com/towertech/societyops/id"
	"github.com/towertech/societyops/types"
)

// Period identifies one maintenance-bill cycle as a (month, year) pair.
type Period struct {
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
}

// PeriodOf returns the billing period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Month: t.Month(), Year: t.Year()}
}

// Key returns the canonical string form of the period, e.g. "2026-03".
// It is the period component of the (flat, period) uniqueness key.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// String returns a human-readable form, e.g. "March 2026".
func (p Period) String() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

// Validate reports whether the period denotes a real month.
func (p Period) Validate() error {
	if p.Month < time.January || p.Month > time.December {
		return fmt.Errorf("billing: invalid month %d", p.Month)
	}
	if p.Year < 2000 || p.Year > 2200 {
		return fmt.Errorf("billing: year %d out of range", p.Year)
	}
	return nil
}

type Status string

const (
	StatusUnpaid Status = "unpaid"
	StatusPaid   Status = "paid"
)

// Bill is one flat's maintenance bill for one billing period.
// At most one bill exists per (flat, period); generation is idempotent
// under that key. A bill transitions unpaid -> paid exactly once and is
// never deleted.
type Bill struct {
	types.Entity
	ID      id.BillID   `json:"id"`
	FlatID  id.FlatID   `json:"flat_id"`
	Period  Period      `json:"period"`
	Amount  types.Money `json:"amount"`
	Status  Status      `json:"status"`
	DueDate time.Time   `json:"due_date"`
	PaidAt  *time.Time  `json:"paid_at,omitempty"`
}

// Overdue reports whether the bill is unpaid past its due date.
func (b *Bill) Overdue(now time.Time) bool {
	return b.Status == StatusUnpaid && now.After(b.DueDate)
}

type Mode string

const (
	ModeOnline Mode = "online"
	ModeUPI    Mode = "upi"
	ModeCash   Mode = "cash"
	ModeCheque Mode = "cheque"
)

// Valid reports whether the mode is one of the known payment modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeOnline, ModeUPI, ModeCash, ModeCheque:
		return true
	}
	return false
}

// Payment records the confirmation of a bill payment. A payment exists
// iff its bill is paid; the engine records confirmation events only and
// speaks no payment-processor protocol.
type Payment struct {
	ID        id.PaymentID `json:"id"`
	BillID    id.BillID    `json:"bill_id"`
	Mode      Mode         `json:"mode"`
	Reference string       `json:"reference"`
	Timestamp time.Time    `json:"timestamp"`
}

// Totals aggregates the bills of one period for dashboard reads.
type Totals struct {
	Billed      types.Money `json:"billed"`
	Collected   types.Money `json:"collected"`
	Outstanding types.Money `json:"outstanding"`
	Bills       int         `json:"bills"`
	Paid        int         `json:"paid"`
	Unpaid      int         `json:"unpaid"`
}
