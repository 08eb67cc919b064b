package id_test

import (
	"strings"
	"testing"

	"github.com/towertech/societyops/id"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		newFn  func() id.ID
		prefix string
	}{
		{"FlatID", id.NewFlatID, "flat_"},
		{"BillID", id.NewBillID, "bill_"},
		{"PaymentID", id.NewPaymentID, "pay_"},
		{"BookingID", id.NewBookingID, "bkg_"},
		{"SessionID", id.NewSessionID, "vst_"},
		{"ComplaintID", id.NewComplaintID, "cmp_"},
		{"BroadcastID", id.NewBroadcastID, "brd_"},
		{"ActivityID", id.NewActivityID, "act_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.newFn().String()
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("expected prefix %q, got %q", tt.prefix, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	i := id.New(id.PrefixBill)
	if i.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if i.Prefix() != id.PrefixBill {
		t.Errorf("expected prefix %q, got %q", id.PrefixBill, i.Prefix())
	}
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		newFn   func() id.ID
		parseFn func(string) (id.ID, error)
	}{
		{"FlatID", id.NewFlatID, id.ParseFlatID},
		{"BillID", id.NewBillID, id.ParseBillID},
		{"PaymentID", id.NewPaymentID, id.ParsePaymentID},
		{"BookingID", id.NewBookingID, id.ParseBookingID},
		{"SessionID", id.NewSessionID, id.ParseSessionID},
		{"ComplaintID", id.NewComplaintID, id.ParseComplaintID},
		{"BroadcastID", id.NewBroadcastID, id.ParseBroadcastID},
		{"ActivityID", id.NewActivityID, id.ParseActivityID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := tt.newFn()
			parsed, err := tt.parseFn(original.String())
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if parsed.String() != original.String() {
				t.Errorf("round-trip mismatch: %q != %q", parsed.String(), original.String())
			}
		})
	}
}

func TestCrossTypeRejection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		parseFn func(string) (id.ID, error)
	}{
		{"ParseFlatID rejects bill_", id.NewBillID().String(), id.ParseFlatID},
		{"ParseBillID rejects pay_", id.NewPaymentID().String(), id.ParseBillID},
		{"ParsePaymentID rejects bkg_", id.NewBookingID().String(), id.ParsePaymentID},
		{"ParseBookingID rejects vst_", id.NewSessionID().String(), id.ParseBookingID},
		{"ParseSessionID rejects cmp_", id.NewComplaintID().String(), id.ParseSessionID},
		{"ParseComplaintID rejects brd_", id.NewBroadcastID().String(), id.ParseComplaintID},
		{"ParseBroadcastID rejects act_", id.NewActivityID().String(), id.ParseBroadcastID},
		{"ParseActivityID rejects flat_", id.NewFlatID().String(), id.ParseActivityID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parseFn(tt.input)
			if err == nil {
				t.Errorf("expected error for cross-type parse of %q, got nil", tt.input)
			}
		})
	}
}

func TestParseWithPrefix(t *testing.T) {
	i := id.NewFlatID()
	parsed, err := id.ParseWithPrefix(i.String(), id.PrefixFlat)
	if err != nil {
		t.Fatalf("ParseWithPrefix failed: %v", err)
	}
	if parsed.String() != i.String() {
		t.Errorf("mismatch: %q != %q", parsed.String(), i.String())
	}

	_, err = id.ParseWithPrefix(i.String(), id.PrefixBill)
	if err == nil {
		t.Error("expected error for wrong prefix")
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := id.Parse("")
	if err == nil {
		t.Error("expected error for empty string")
	}
}

func TestNilID(t *testing.T) {
	var i id.ID
	if !i.IsNil() {
		t.Error("zero-value ID should be nil")
	}
	if i.String() != "" {
		t.Errorf("expected empty string, got %q", i.String())
	}
	if i.Prefix() != "" {
		t.Errorf("expected empty prefix, got %q", i.Prefix())
	}
}

func TestMarshalUnmarshalText(t *testing.T) {
	original := id.NewBookingID()
	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}

	var restored id.ID
	if unmarshalErr := restored.UnmarshalText(data); unmarshalErr != nil {
		t.Fatalf("UnmarshalText failed: %v", unmarshalErr)
	}
	if restored.String() != original.String() {
		t.Errorf("mismatch: %q != %q", restored.String(), original.String())
	}

	// Nil round-trip.
	var nilID id.ID
	data, err = nilID.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText(nil) failed: %v", err)
	}
	var restored2 id.ID
	if err := restored2.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText(nil) failed: %v", err)
	}
	if !restored2.IsNil() {
		t.Error("expected nil after round-trip of nil ID")
	}
}

func TestValueScan(t *testing.T) {
	original := id.NewSessionID()
	val, err := original.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var scanned id.ID
	if scanErr := scanned.Scan(val); scanErr != nil {
		t.Fatalf("Scan failed: %v", scanErr)
	}
	if scanned.String() != original.String() {
		t.Errorf("mismatch: %q != %q", scanned.String(), original.String())
	}

	// Nil round-trip.
	var nilID id.ID
	val, err = nilID.Value()
	if err != nil {
		t.Fatalf("Value(nil) failed: %v", err)
	}
	if val != nil {
		t.Errorf("expected nil value for nil ID, got %v", val)
	}

	var scanned2 id.ID
	if err := scanned2.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if !scanned2.IsNil() {
		t.Error("expected nil after scan of nil")
	}
}

func TestUniqueness(t *testing.T) {
	a := id.NewBillID()
	b := id.NewBillID()
	if a.String() == b.String() {
		t.Errorf("two consecutive NewBillID() calls returned the same ID: %q", a.String())
	}
}
