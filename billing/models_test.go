package billing

import (
	"testing"
	"time"

	"github.com/towertech/societyops/types"
)

func TestPeriodKey(t *testing.T) {
	tests := []struct {
		period Period
		want   string
	}{
		{Period{Month: time.March, Year: 2026}, "2026-03"},
		{Period{Month: time.December, Year: 2026}, "2026-12"},
		{Period{Month: time.January, Year: 2001}, "2001-01"},
	}

	for _, tt := range tests {
		if got := tt.period.Key(); got != tt.want {
			t.Errorf("Key(%v) = %q, want %q", tt.period, got, tt.want)
		}
	}
}

func TestPeriodKeyOrdering(t *testing.T) {
	// String comparison on keys must match chronological order.
	earlier := Period{Month: time.September, Year: 2025}
	later := Period{Month: time.February, Year: 2026}
	if !(earlier.Key() < later.Key()) {
		t.Errorf("expected %q < %q", earlier.Key(), later.Key())
	}
}

func TestPeriodValidate(t *testing.T) {
	tests := []struct {
		name    string
		period  Period
		wantErr bool
	}{
		{"valid", Period{Month: time.June, Year: 2026}, false},
		{"zero month", Period{Year: 2026}, true},
		{"month 13", Period{Month: 13, Year: 2026}, true},
		{"year too small", Period{Month: time.June, Year: 1999}, true},
		{"year too large", Period{Month: time.June, Year: 2300}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.period.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPeriodOf(t *testing.T) {
	p := PeriodOf(time.Date(2026, time.August, 26, 13, 0, 0, 0, time.UTC))
	if p.Month != time.August || p.Year != 2026 {
		t.Errorf("PeriodOf = %v, want August 2026", p)
	}
}

func TestModeValid(t *testing.T) {
	for _, m := range []Mode{ModeOnline, ModeUPI, ModeCash, ModeCheque} {
		if !m.Valid() {
			t.Errorf("expected mode %q to be valid", m)
		}
	}
	if Mode("barter").Valid() {
		t.Error("expected unknown mode to be invalid")
	}
	if Mode("").Valid() {
		t.Error("expected empty mode to be invalid")
	}
}

func TestBillOverdue(t *testing.T) {
	due := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	b := &Bill{Status: StatusUnpaid, DueDate: due, Amount: types.INR(350000)}

	if b.Overdue(due.AddDate(0, 0, -1)) {
		t.Error("bill should not be overdue before due date")
	}
	if !b.Overdue(due.AddDate(0, 0, 1)) {
		t.Error("unpaid bill past due date should be overdue")
	}

	b.Status = StatusPaid
	if b.Overdue(due.AddDate(0, 0, 1)) {
		t.Error("paid bill is never overdue")
	}
}
