package booking

import (
	"time"

	"github.com/towertech/societyops/id"
	"github.com/towertech/societyops/types"
)

// Slot is one of the fixed, non-overlapping reservation windows.
type Slot string

const (
	Slot0608 Slot = "06:00 AM - 08:00 AM"
	Slot0810 Slot = "08:00 AM - 10:00 AM"
	Slot1012 Slot = "10:00 AM - 12:00 PM"
	Slot1214 Slot = "12:00 PM - 02:00 PM"
	Slot1416 Slot = "02:00 PM - 04:00 PM"
	Slot1618 Slot = "04:00 PM - 06:00 PM"
	Slot1820 Slot = "06:00 PM - 08:00 PM"
	Slot2022 Slot = "08:00 PM - 10:00 PM"
)

// Slots returns the full slot enumeration in day order.
func Slots() []Slot {
	return []Slot{
		Slot0608, Slot0810, Slot1012, Slot1214,
		Slot1416, Slot1618, Slot1820, Slot2022,
	}
}

// Valid reports whether s is a member of the fixed slot set.
func (s Slot) Valid() bool {
	for _, known := range Slots() {
		if s == known {
			return true
		}
	}
	return false
}

// DateFormat is the canonical calendar-date layout for booking dates.
const DateFormat = "2006-01-02"

// Booking reserves one amenity for one date and slot on behalf of a
// flat. No two bookings share the same (amenity, date, slot) key.
type Booking struct {
	types.Entity
	ID      id.BookingID `json:"id"`
	Amenity string       `json:"amenity"`
	Date    time.Time    `json:"date"` // midnight UTC of the reserved day
	Slot    Slot         `json:"slot"`
	FlatID  id.FlatID    `json:"flat_id"`
}

// Key returns the uniqueness key "amenity|date|slot". The scheduler's
// core guarantee is that at most one booking exists per key.
func (b *Booking) Key() string {
	return Key(b.Amenity, b.Date, b.Slot)
}

// Key builds the (amenity, date, slot) uniqueness key.
func Key(amenity string, date time.Time, slot Slot) string {
	return amenity + "|" + date.UTC().Format(DateFormat) + "|" + string(slot)
}

// Day truncates t to midnight UTC, the canonical booking-date value.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
