package visitor

import (
	"time"

	"github.com/towertech/societyops/id"
	"github.com/towertech/societyops/types"
)

type Status string

const (
	StatusIn  Status = "in"
	StatusOut Status = "out"
)

// Session is one visitor's presence interval from check-in to
// check-out. Status is Out iff ExitAt is set; a session moves In -> Out
// exactly once and never reverses. Visitors are identified by name only
// across visits; the session ID is the stable handle.
type Session struct {
	types.Entity
	ID      id.SessionID `json:"id"`
	Name    string       `json:"name"`
	Tower   string       `json:"tower"`
	FlatID  id.FlatID    `json:"flat_id"`
	EntryAt time.Time    `json:"entry_at"`
	ExitAt  *time.Time   `json:"exit_at,omitempty"`
	Status  Status       `json:"status"`
}

// Open reports whether the session is still In.
func (s *Session) Open() bool {
	return s.Status == StatusIn
}

// Duration returns the length of the presence interval. Open sessions
// are measured against now.
func (s *Session) Duration(now time.Time) time.Duration {
	if s.ExitAt != nil {
		return s.ExitAt.Sub(s.EntryAt)
	}
	return now.Sub(s.EntryAt)
}
