package flat

import (
	"github.com/towertech/societyops/id"
	"github.com/towertech/societyops/types"
)

// MaintenanceStatus is derived from a flat's most recent maintenance bill.
// It is never stored; the engine computes it as a pure read.
type MaintenanceStatus string

const (
	StatusClear MaintenanceStatus = "clear" // most recent bill paid, or no bills
	StatusDue   MaintenanceStatus = "due"   // most recent bill unpaid
)

type Flat struct {
	types.Entity
	ID        id.FlatID         `json:"id"`
	Tower     string            `json:"tower"`
	Floor     int               `json:"floor"`
	Number    string            `json:"number"`
	OwnerName string            `json:"owner_name,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Label returns the display label for the flat, e.g. "A-101".
func (f *Flat) Label() string {
	if f.Tower == "" {
		return f.Number
	}
	return f.Tower + "-" + f.Number
}
