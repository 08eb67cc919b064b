package visitor

import (
	"context"
	"time"

	"github.com/towertech/societyops/activity"
	"github.com/towertech/societyops/id"
)

type Store interface {
	// Create inserts a session and its activity entry atomically.
	// Every check-in is a new session; closed sessions never reopen.
	Create(ctx context.Context, s *Session, entry *activity.Entry) error

	// Close sets the exit timestamp and flips the session In -> Out,
	// inserting the activity entry in the same transaction. Fails if
	// the session is missing or already Out, so a repeated check-out
	// can never overwrite the exit time.
	Close(ctx context.Context, sessionID id.SessionID, exitAt time.Time, entry *activity.Entry) error

	Get(ctx context.Context, sessionID id.SessionID) (*Session, error)
	List(ctx context.Context, opts ListOpts) ([]*Session, error)
}

type ListOpts struct {
	Tower    string
	FlatID   id.FlatID
	OpenOnly bool
	Limit    int
	Offset   int
}
