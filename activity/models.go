// Package activity defines the append-only activity log. Every
// successful mutation in the engine writes exactly one entry, in the
// same store transaction as the mutation itself.
package activity

import (
	"time"

	"github.com/towertech/societyops/id"
)

// Action identifies the kind of mutation an entry records.
type Action string

const (
	ActionFlatRegistered    Action = "flat.registered"
	ActionBillGenerated     Action = "bill.generated"
	ActionPaymentRecorded   Action = "payment.recorded"
	ActionBookingCreated    Action = "booking.created"
	ActionVisitorCheckedIn  Action = "visitor.checked_in"
	ActionVisitorCheckedOut Action = "visitor.checked_out"
	ActionComplaintRaised   Action = "complaint.raised"
	ActionComplaintAdvanced Action = "complaint.advanced"
	ActionBroadcastCreated  Action = "broadcast.created"
)

// Entry is one append-only activity log record. Ordering by timestamp
// is the log's only guarantee; entries written through one store are
// monotonically timestamped.
type Entry struct {
	ID        id.ActivityID `json:"id"`
	Actor     string        `json:"actor"`
	Action    Action        `json:"action"`
	Detail    string        `json:"detail"`
	Timestamp time.Time     `json:"timestamp"`
}

// New builds an entry stamped with the current UTC time.
func New(actor string, action Action, detail string) *Entry {
	return &Entry{
		ID:        id.NewActivityID(),
		Actor:     actor,
		Action:    action,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	}
}
