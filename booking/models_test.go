package booking

import (
	"testing"
	"time"
)

func TestSlotValid(t *testing.T) {
	for _, s := range Slots() {
		if !s.Valid() {
			t.Errorf("expected slot %q to be valid", s)
		}
	}
	if Slot("11:00 AM - 01:00 PM").Valid() {
		t.Error("expected off-grid slot to be invalid")
	}
	if Slot("").Valid() {
		t.Error("expected empty slot to be invalid")
	}
}

func TestSlotsEnumeration(t *testing.T) {
	// Eight fixed two-hour windows from 06:00 to 22:00.
	if got := len(Slots()); got != 8 {
		t.Fatalf("len(Slots()) = %d, want 8", got)
	}
}

func TestDay(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	in := time.Date(2026, time.April, 20, 1, 30, 0, 0, ist) // 2026-04-19T20:00Z
	got := Day(in)

	want := time.Date(2026, time.April, 19, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Day(%v) = %v, want %v", in, got, want)
	}
}

func TestKey(t *testing.T) {
	date := time.Date(2026, time.April, 20, 15, 45, 0, 0, time.UTC)
	got := Key("Clubhouse", date, Slot1012)
	want := "Clubhouse|2026-04-20|10:00 AM - 12:00 PM"
	if got != want {
		t.Errorf("Key = %q, want %q", got, want)
	}

	b := &Booking{Amenity: "Clubhouse", Date: Day(date), Slot: Slot1012}
	if b.Key() != want {
		t.Errorf("Booking.Key = %q, want %q", b.Key(), want)
	}
}
