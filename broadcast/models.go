package broadcast

import (
	"github.com/towertech/societyops/id"
	"github.com/towertech/societyops/types"
)

// Kind distinguishes the three broadcast record shapes. All are
// append-only with no state machine.
type Kind string

const (
	KindAlert  Kind = "alert"
	KindEvent  Kind = "event"
	KindNotice Kind = "notice"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Broadcast is a record addressed to a tower (or to all towers when
// Tower is empty).
type Broadcast struct {
	types.Entity
	ID       id.BroadcastID `json:"id"`
	Kind     Kind           `json:"kind"`
	Tower    string         `json:"tower,omitempty"`
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Severity Severity       `json:"severity"`
}
