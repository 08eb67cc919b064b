package broadcast

import (
	"context"

	"github.com/towertech/societyops/activity"
	"github.com/towertech/societyops/id"
)

type Store interface {
	// Create inserts a broadcast and its activity entry atomically.
	Create(ctx context.Context, b *Broadcast, entry *activity.Entry) error
	Get(ctx context.Context, broadcastID id.BroadcastID) (*Broadcast, error)
	List(ctx context.Context, opts ListOpts) ([]*Broadcast, error)
}

type ListOpts struct {
	Kind   Kind
	Tower  string
	Limit  int
	Offset int
}
