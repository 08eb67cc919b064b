package booking

import (
	"context"
	"time"

	"github.com/towertech/societyops/activity"
	"github.com/towertech/societyops/id"
)

type Store interface {
	// Create inserts a booking and its activity entry atomically.
	// Fails if a booking already holds the same (amenity, date, slot)
	// key; concurrent requests for one key yield exactly one success.
	Create(ctx context.Context, b *Booking, entry *activity.Entry) error
	Get(ctx context.Context, bookingID id.BookingID) (*Booking, error)
	List(ctx context.Context, opts ListOpts) ([]*Booking, error)
}

type ListOpts struct {
	Amenity string
	Date    time.Time // zero means any date
	FlatID  id.FlatID
	Limit   int
	Offset  int
}
