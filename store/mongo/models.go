package mongo

import (
	"time"

	"github.com/xraph/grove"

	"github.com/towertech/societyops/activity"
	"github.com/towertech/societyops/billing"
	"github.com/towertech/societyops/booking"
	"github.com/towertech/societyops/broadcast"
	"github.com/towertech/societyops/complaint"
	"github.com/towertech/societyops/flat"
	"github.com/towertech/societyops/id"
	"github.com/towertech/societyops/types"
	"github.com/towertech/societyops/visitor"
)

// ==================== Flat models ====================

type flatModel struct {
	grove.BaseModel `grove:"table:society_flats"`

	ID        string            `grove:"id,pk"      bson:"_id"`
	Tower     string            `grove:"tower"      bson:"tower"`
	Floor     int               `grove:"floor"      bson:"floor"`
	Number    string            `grove:"number"     bson:"number"`
	OwnerName string            `grove:"owner_name" bson:"owner_name"`
	Metadata  map[string]string `grove:"metadata"   bson:"metadata,omitempty"`
	CreatedAt time.Time         `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time         `grove:"updated_at" bson:"updated_at"`
}

func toFlatModel(f *flat.Flat) *flatModel {
	return &flatModel{
		ID:        f.ID.String(),
		Tower:     f.Tower,
		Floor:     f.Floor,
		Number:    f.Number,
		OwnerName: f.OwnerName,
		Metadata:  f.Metadata,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func fromFlatModel(m *flatModel) (*flat.Flat, error) {
	flatID, err := id.ParseFlatID(m.ID)
	if err != nil {
		return nil, err
	}

	return &flat.Flat{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:        flatID,
		Tower:     m.Tower,
		Floor:     m.Floor,
		Number:    m.Number,
		OwnerName: m.OwnerName,
		Metadata:  m.Metadata,
	}, nil
}

// ==================== Bill models ====================

type billModel struct {
	grove.BaseModel `grove:"table:society_bills"`

	ID          string     `grove:"id,pk"        bson:"_id"`
	FlatID      string     `grove:"flat_id"      bson:"flat_id"`
	PeriodYear  int        `grove:"period_year"  bson:"period_year"`
	PeriodMonth int        `grove:"period_month" bson:"period_month"`
	AmountMinor int64      `grove:"amount_minor" bson:"amount_minor"`
	Currency    string     `grove:"currency"     bson:"currency"`
	Status      string     `grove:"status"       bson:"status"`
	DueDate     time.Time  `grove:"due_date"     bson:"due_date"`
	PaidAt      *time.Time `grove:"paid_at"      bson:"paid_at,omitempty"`
	CreatedAt   time.Time  `grove:"created_at"   bson:"created_at"`
	UpdatedAt   time.Time  `grove:"updated_at"   bson:"updated_at"`
}

func toBillModel(b *billing.Bill) *billModel {
	return &billModel{
		ID:          b.ID.String(),
		FlatID:      b.FlatID.String(),
		PeriodYear:  b.Period.Year,
		PeriodMonth: int(b.Period.Month),
		AmountMinor: b.Amount.Amount,
		Currency:    b.Amount.Currency,
		Status:      string(b.Status),
		DueDate:     b.DueDate,
		PaidAt:      b.PaidAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func fromBillModel(m *billModel) (*billing.Bill, error) {
	billID, err := id.ParseBillID(m.ID)
	if err != nil {
		return nil, err
	}
	flatID, err := id.ParseFlatID(m.FlatID)
	if err != nil {
		return nil, err
	}

	return &billing.Bill{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:      billID,
		FlatID:  flatID,
		Period:  billing.Period{Month: time.Month(m.PeriodMonth), Year: m.PeriodYear},
		Amount:  types.Money{Amount: m.AmountMinor, Currency: m.Currency},
		Status:  billing.Status(m.Status),
		DueDate: m.DueDate,
		PaidAt:  m.PaidAt,
	}, nil
}

// ==================== Payment models ====================

type paymentModel struct {
	grove.BaseModel `grove:"table:society_payments"`

	ID        string    `grove:"id,pk"     bson:"_id"`
	BillID    string    `grove:"bill_id"   bson:"bill_id"`
	Mode      string    `grove:"mode"      bson:"mode"`
	Reference string    `grove:"reference" bson:"reference"`
	Timestamp time.Time `grove:"timestamp" bson:"timestamp"`
}

func toPaymentModel(p *billing.Payment) *paymentModel {
	return &paymentModel{
		ID:        p.ID.String(),
		BillID:    p.BillID.String(),
		Mode:      string(p.Mode),
		Reference: p.Reference,
		Timestamp: p.Timestamp,
	}
}

func fromPaymentModel(m *paymentModel) (*billing.Payment, error) {
	paymentID, err := id.ParsePaymentID(m.ID)
	if err != nil {
		return nil, err
	}
	billID, err := id.ParseBillID(m.BillID)
	if err != nil {
		return nil, err
	}

	return &billing.Payment{
		ID:        paymentID,
		BillID:    billID,
		Mode:      billing.Mode(m.Mode),
		Reference: m.Reference,
		Timestamp: m.Timestamp,
	}, nil
}

// ==================== Booking models ====================

type bookingModel struct {
	grove.BaseModel `grove:"table:society_bookings"`

	ID        string    `grove:"id,pk"      bson:"_id"`
	Amenity   string    `grove:"amenity"    bson:"amenity"`
	Date      string    `grove:"date"       bson:"date"`
	Slot      string    `grove:"slot"       bson:"slot"`
	FlatID    string    `grove:"flat_id"    bson:"flat_id"`
	CreatedAt time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at" bson:"updated_at"`
}

func toBookingModel(b *booking.Booking) *bookingModel {
	return &bookingModel{
		ID:        b.ID.String(),
		Amenity:   b.Amenity,
		Date:      b.Date.Format(booking.DateFormat),
		Slot:      string(b.Slot),
		FlatID:    b.FlatID.String(),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func fromBookingModel(m *bookingModel) (*booking.Booking, error) {
	bookingID, err := id.ParseBookingID(m.ID)
	if err != nil {
		return nil, err
	}
	flatID, err := id.ParseFlatID(m.FlatID)
	if err != nil {
		return nil, err
	}
	date, err := time.ParseInLocation(booking.DateFormat, m.Date, time.UTC)
	if err != nil {
		return nil, err
	}

	return &booking.Booking{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:      bookingID,
		Amenity: m.Amenity,
		Date:    date,
		Slot:    booking.Slot(m.Slot),
		FlatID:  flatID,
	}, nil
}

// ==================== Visitor session models ====================

type sessionModel struct {
	grove.BaseModel `grove:"table:society_visitor_sessions"`

	ID        string     `grove:"id,pk"      bson:"_id"`
	Name      string     `grove:"name"       bson:"name"`
	Tower     string     `grove:"tower"      bson:"tower"`
	FlatID    string     `grove:"flat_id"    bson:"flat_id"`
	EntryAt   time.Time  `grove:"entry_at"   bson:"entry_at"`
	ExitAt    *time.Time `grove:"exit_at"    bson:"exit_at,omitempty"`
	Status    string     `grove:"status"     bson:"status"`
	CreatedAt time.Time  `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `grove:"updated_at" bson:"updated_at"`
}

func toSessionModel(s *visitor.Session) *sessionModel {
	return &sessionModel{
		ID:        s.ID.String(),
		Name:      s.Name,
		Tower:     s.Tower,
		FlatID:    s.FlatID.String(),
		EntryAt:   s.EntryAt,
		ExitAt:    s.ExitAt,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func fromSessionModel(m *sessionModel) (*visitor.Session, error) {
	sessionID, err := id.ParseSessionID(m.ID)
	if err != nil {
		return nil, err
	}
	flatID, err := id.ParseFlatID(m.FlatID)
	if err != nil {
		return nil, err
	}

	return &visitor.Session{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:      sessionID,
		Name:    m.Name,
		Tower:   m.Tower,
		FlatID:  flatID,
		EntryAt: m.EntryAt,
		ExitAt:  m.ExitAt,
		Status:  visitor.Status(m.Status),
	}, nil
}

// ==================== Complaint models ====================

type complaintModel struct {
	grove.BaseModel `grove:"table:society_complaints"`

	ID          string     `grove:"id,pk"       bson:"_id"`
	FlatID      string     `grove:"flat_id"     bson:"flat_id"`
	Title       string     `grove:"title"       bson:"title"`
	Description string     `grove:"description" bson:"description"`
	Category    string     `grove:"category"    bson:"category"`
	Status      string     `grove:"status"      bson:"status"`
	ResolvedAt  *time.Time `grove:"resolved_at" bson:"resolved_at,omitempty"`
	CreatedAt   time.Time  `grove:"created_at"  bson:"created_at"`
	UpdatedAt   time.Time  `grove:"updated_at"  bson:"updated_at"`
}

func toComplaintModel(c *complaint.Complaint) *complaintModel {
	return &complaintModel{
		ID:          c.ID.String(),
		FlatID:      c.FlatID.String(),
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Status:      string(c.Status),
		ResolvedAt:  c.ResolvedAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func fromComplaintModel(m *complaintModel) (*complaint.Complaint, error) {
	complaintID, err := id.ParseComplaintID(m.ID)
	if err != nil {
		return nil, err
	}
	flatID, err := id.ParseFlatID(m.FlatID)
	if err != nil {
		return nil, err
	}

	return &complaint.Complaint{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:          complaintID,
		FlatID:      flatID,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Status:      complaint.Status(m.Status),
		ResolvedAt:  m.ResolvedAt,
	}, nil
}

// ==================== Broadcast models ====================

type broadcastModel struct {
	grove.BaseModel `grove:"table:society_broadcasts"`

	ID        string    `grove:"id,pk"      bson:"_id"`
	Kind      string    `grove:"kind"       bson:"kind"`
	Tower     string    `grove:"tower"      bson:"tower"`
	Title     string    `grove:"title"      bson:"title"`
	Message   string    `grove:"message"    bson:"message"`
	Severity  string    `grove:"severity"   bson:"severity"`
	CreatedAt time.Time `grove:"created_at" bson:"created_at"`
	UpdatedAt time.Time `grove:"updated_at" bson:"updated_at"`
}

func toBroadcastModel(b *broadcast.Broadcast) *broadcastModel {
	return &broadcastModel{
		ID:        b.ID.String(),
		Kind:      string(b.Kind),
		Tower:     b.Tower,
		Title:     b.Title,
		Message:   b.Message,
		Severity:  string(b.Severity),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func fromBroadcastModel(m *broadcastModel) (*broadcast.Broadcast, error) {
	broadcastID, err := id.ParseBroadcastID(m.ID)
	if err != nil {
		return nil, err
	}

	return &broadcast.Broadcast{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:       broadcastID,
		Kind:     broadcast.Kind(m.Kind),
		Tower:    m.Tower,
		Title:    m.Title,
		Message:  m.Message,
		Severity: broadcast.Severity(m.Severity),
	}, nil
}

// ==================== Activity models ====================

type activityModel struct {
	grove.BaseModel `grove:"table:society_activity_log"`

	ID        string    `grove:"id,pk"     bson:"_id"`
	Actor     string    `grove:"actor"     bson:"actor"`
	Action    string    `grove:"action"    bson:"action"`
	Detail    string    `grove:"detail"    bson:"detail"`
	Timestamp time.Time `grove:"timestamp" bson:"timestamp"`
}

func toActivityModel(e *activity.Entry) *activityModel {
	return &activityModel{
		ID:        e.ID.String(),
		Actor:     e.Actor,
		Action:    string(e.Action),
		Detail:    e.Detail,
		Timestamp: e.Timestamp,
	}
}

func fromActivityModel(m *activityModel) (*activity.Entry, error) {
	entryID, err := id.ParseActivityID(m.ID)
	if err != nil {
		return nil, err
	}

	return &activity.Entry{
		ID:        entryID,
		Actor:     m.Actor,
		Action:    activity.Action(m.Action),
		Detail:    m.Detail,
		Timestamp: m.Timestamp,
	}, nil
}
