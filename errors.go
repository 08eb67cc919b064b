package societyops

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound     = errors.New("societyops: not found")
	ErrInvalidInput = errors.New("societyops: invalid input")

	// Flat errors
	ErrFlatNotFound = errors.New("societyops: flat not found")
	ErrFlatExists   = errors.New("societyops: flat already registered")

	// Billing errors
	ErrBillNotFound = errors.New("societyops: bill not found")
	ErrBillExists   = errors.New("societyops: bill already exists for flat and period")
	ErrAlreadyPaid  = errors.New("societyops: bill already paid")

	// Booking errors
	ErrBookingNotFound = errors.New("societyops: booking not found")
	ErrSlotTaken       = errors.New("societyops: slot already booked")
	ErrInvalidSlot     = errors.New("societyops: unknown time slot")
	ErrPastDate        = errors.New("societyops: booking date is in the past")

	// Visitor errors
	ErrSessionNotFound = errors.New("societyops: visitor session not found")
	ErrAlreadyOut      = errors.New("societyops: visitor already checked out")

	// Complaint errors
	ErrComplaintNotFound = errors.New("societyops: complaint not found")
	ErrInvalidTransition = errors.New("societyops: invalid complaint status transition")

	// Broadcast errors
	ErrBroadcastNotFound = errors.New("societyops: broadcast not found")

	// Store errors
	ErrStoreNotReady     = errors.New("societyops: store not ready")
	ErrStoreClosed       = errors.New("societyops: store is closed")
	ErrTransactionFailed = errors.New("societyops: transaction failed")
	ErrMigrationFailed   = errors.New("societyops: migration failed")
)

// ValidationError represents a validation failure with details. It is
// rejected before any transaction starts and is never partially applied.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("societyops: validation failed for %s: %s", e.Field, e.Message)
}

// IsNotFound returns true if the error reports a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrFlatNotFound) ||
		errors.Is(err, ErrBillNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrComplaintNotFound) ||
		errors.Is(err, ErrBroadcastNotFound)
}

// IsConflict returns true if the target entity already satisfies or
// precludes the requested change. The request had no effect and may not
// be blindly retried to a different outcome.
func IsConflict(err error) bool {
	return errors.Is(err, ErrFlatExists) ||
		errors.Is(err, ErrBillExists) ||
		errors.Is(err, ErrAlreadyPaid) ||
		errors.Is(err, ErrSlotTaken) ||
		errors.Is(err, ErrAlreadyOut) ||
		errors.Is(err, ErrInvalidTransition)
}

// IsRetryable returns true if the error is temporary and the identical
// request can be retried safely. Idempotent operations self-heal on
// retry; the rest fail closed with a Conflict if the first attempt
// actually landed.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreNotReady) ||
		errors.Is(err, ErrTransactionFailed)
}
