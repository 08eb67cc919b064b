package complaint

import (
	"context"
	"time"

	"github.com/towertech/societyops/activity"
	"github.com/towertech/societyops/id"
)

type Store interface {
	// Create inserts a complaint and its activity entry atomically.
	Create(ctx context.Context, c *Complaint, entry *activity.Entry) error

	// Advance moves the complaint from -> to, conditioned on the stored
	// status still being from, and inserts the activity entry in the
	// same transaction. resolvedAt is set when to is resolved. Fails if
	// the complaint is missing or its status is no longer from.
	Advance(ctx context.Context, complaintID id.ComplaintID, from, to Status, resolvedAt *time.Time, entry *activity.Entry) error

	Get(ctx context.Context, complaintID id.ComplaintID) (*Complaint, error)
	List(ctx context.Context, opts ListOpts) ([]*Complaint, error)
}

type ListOpts struct {
	FlatID id.FlatID
	Status Status
	Limit  int
	Offset int
}
