package complaint

import (
	"time"

	"github.com/towertech/societyops/id"
	"github.com/towertech/societyops/types"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

// rank orders statuses for the forward-only state machine.
func (s Status) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusInProgress:
		return 1
	case StatusResolved:
		return 2
	default:
		return -1
	}
}

// Known reports whether s is a member of the status enumeration.
func (s Status) Known() bool {
	return s.rank() >= 0
}

// CanAdvance reports whether a complaint may move from -> to. Status
// only moves forward; skipping Pending -> Resolved is permitted, but
// no transition may go backward or stand still.
func CanAdvance(from, to Status) bool {
	if !from.Known() || !to.Known() {
		return false
	}
	return to.rank() > from.rank()
}

type Complaint struct {
	types.Entity
	ID          id.ComplaintID `json:"id"`
	FlatID      id.FlatID      `json:"flat_id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Status      Status         `json:"status"`
	ResolvedAt  *time.Time     `json:"resolved_at,omitempty"`
}
