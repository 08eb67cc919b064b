package audithook

// Action constants for audit events.
const (
	// Flat actions
	ActionFlatRegistered = "flat.registered"

	// Billing actions
	ActionBillGenerated   = "bill.generated"
	ActionPaymentRecorded = "payment.recorded"

	// Booking actions
	ActionBookingCreated = "booking.created"

	// Visitor actions
	ActionVisitorCheckedIn  = "visitor.checked_in"
	ActionVisitorCheckedOut = "visitor.checked_out"

	// Complaint actions
	ActionComplaintRaised   = "complaint.raised"
	ActionComplaintAdvanced = "complaint.advanced"

	// Broadcast actions
	ActionBroadcastCreated = "broadcast.created"
)

// Resource constants for audit events.
const (
	ResourceFlat      = "flat"
	ResourceBill      = "bill"
	ResourcePayment   = "payment"
	ResourceBooking   = "booking"
	ResourceVisitor   = "visitor"
	ResourceComplaint = "complaint"
	ResourceBroadcast = "broadcast"
)

// Category constants for audit events.
const (
	CategoryRegistry  = "registry"
	CategoryBilling   = "billing"
	CategoryAmenity   = "amenity"
	CategorySecurity  = "security"
	CategoryGrievance = "grievance"
	CategoryNotice    = "notice"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
