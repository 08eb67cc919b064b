package flat

import (
	"context"

	"github.com/towertech/societyops/id"
)

type Store interface {
	Create(ctx context.Context, f *Flat) error
	Get(ctx context.Context, flatID id.FlatID) (*Flat, error)
	List(ctx context.Context, opts ListOpts) ([]*Flat, error)
}

type ListOpts struct {
	Tower  string
	Limit  int
	Offset int
}
