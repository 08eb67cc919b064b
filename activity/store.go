package activity

import (
	"context"
	"time"
)

// Store is the read side of the activity log. Entries are written only
// as part of the compound mutation operations on the unified store, so
// the log cannot drift from the mutations it describes.
type Store interface {
	List(ctx context.Context, opts ListOpts) ([]*Entry, error)
	Count(ctx context.Context, action Action) (int64, error)
}

type ListOpts struct {
	Actor  string
	Action Action
	Since  time.Time
	Until  time.Time
	Limit  int
	Offset int
}
