// Package societyops provides an embeddable operations engine for
// residential societies (gated apartment communities).
//
// It is designed as a library, not a service. Import it directly into
// your Go application. It provides:
//
//   - A flat registry keyed by tower and flat number
//   - Idempotent monthly maintenance bill generation
//   - Payment recording with exactly-once unpaid -> paid transitions
//   - Amenity slot booking with atomic conflict rejection
//   - Visitor check-in/check-out session tracking
//   - A forward-only complaint workflow
//   - Tower-scoped and society-wide broadcasts
//   - An append-only activity log written atomically with every mutation
//
// # Quick Start
//
// Create an engine with your preferred store:
//
//	import (
//	    "github.com/towertech/societyops"
//	    "github.com/towertech/societyops/store/memory"
//	)
//
//	eng := societyops.New(memory.New())
//	if err := eng.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Stop()
//
// # Core Concepts
//
// Flats are the unit everything else hangs off:
//
//	f := &flat.Flat{Tower: "A", Floor: 4, Number: "402", OwnerName: "Meera Iyer"}
//	err := eng.RegisterFlat(ctx, f)
//
// Bills are generated once per flat per period; re-running is a no-op:
//
//	bills, err := eng.GenerateBills(ctx, billing.Period{Month: time.April, Year: 2026},
//	    societyops.INR(350000), dueDate)
//
// Payments flip a bill to paid exactly once:
//
//	payment, err := eng.RecordPayment(ctx, billID, billing.ModeUPI, "ref-9913")
//
// # Atomicity
//
// Every mutation writes its activity log entry in the same store
// transaction as the entity change. A mutation that fails leaves no log
// entry, and a logged mutation is always visible.
//
// All monetary calculations use integer arithmetic to avoid
// floating-point precision issues. The Money type represents amounts in
// the smallest currency unit (paise for INR, cents for USD).
//
// # TypeID
//
// All entities use TypeID for globally unique, type-safe identifiers:
//
//	flat_01h2xcejqtf2nbrexx3vqjhp41  // Flat ID
//	bill_01h2xcejqtf2nbrexx3vqjhp41  // Bill ID
//	bkg_01h455vb4pex5vsknk084sn02q   // Booking ID
//
// TypeIDs are K-sortable, making them ideal for database indexes and
// providing natural time-ordering of entities.
package societyops
