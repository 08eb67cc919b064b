package billing

import (
	"context"
	"time"

	"github.com/towertech/societyops/activity"
	"github.com/towertech/societyops/id"
)

type Store interface {
	// Create inserts a bill and its activity entry atomically.
	// Fails if a bill already exists for the bill's (flat, period) key.
	Create(ctx context.Context, b *Bill, entry *activity.Entry) error
	Get(ctx context.Context, billID id.BillID) (*Bill, error)
	GetByPeriod(ctx context.Context, flatID id.FlatID, period Period) (*Bill, error)
	List(ctx context.Context, opts ListOpts) ([]*Bill, error)
	Totals(ctx context.Context, opts ListOpts) (*Totals, error)

	// RecordPayment flips the referenced bill unpaid -> paid and inserts
	// the payment and activity entry in the same transaction. Fails if
	// the bill is missing or already paid.
	RecordPayment(ctx context.Context, p *Payment, paidAt time.Time, entry *activity.Entry) error
	GetPayment(ctx context.Context, paymentID id.PaymentID) (*Payment, error)
}

type ListOpts struct {
	FlatID id.FlatID
	Period *Period
	Status Status
	Limit  int
	Offset int
}
