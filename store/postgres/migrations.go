package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the society store.
var Migrations = migrate.NewGroup("societyops")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_society_flats",
			Version: "20250101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS society_flats (
    id         TEXT PRIMARY KEY,
    tower      TEXT NOT NULL DEFAULT '',
    floor      INT NOT NULL DEFAULT 0,
    number     TEXT NOT NULL DEFAULT '',
    owner_name TEXT NOT NULL DEFAULT '',
    metadata   JSONB NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_society_flats_unit ON society_flats (tower, number);
CREATE INDEX IF NOT EXISTS idx_society_flats_tower ON society_flats (tower);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS society_flats`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_society_bills",
			Version: "20250101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS society_bills (
    id           TEXT PRIMARY KEY,
    flat_id      TEXT NOT NULL DEFAULT '',
    period_year  INT NOT NULL DEFAULT 0,
    period_month INT NOT NULL DEFAULT 0,
    amount_minor BIGINT NOT NULL DEFAULT 0,
    currency     TEXT NOT NULL DEFAULT '',
    status       TEXT NOT NULL DEFAULT 'unpaid',
    due_date     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    paid_at      TIMESTAMPTZ,
    created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_society_bills_flat_period ON society_bills (flat_id, period_year, period_month);
CREATE INDEX IF NOT EXISTS idx_society_bills_period ON society_bills (period_year, period_month);
CREATE INDEX IF NOT EXISTS idx_society_bills_status ON society_bills (status);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS society_bills`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_society_payments",
			Version: "20250101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS society_payments (
    id        TEXT PRIMARY KEY,
    bill_id   TEXT NOT NULL DEFAULT '',
    mode      TEXT NOT NULL DEFAULT '',
    reference TEXT NOT NULL DEFAULT '',
    timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_society_payments_bill ON society_payments (bill_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS society_payments`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_society_bookings",
			Version: "20250101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS society_bookings (
    id         TEXT PRIMARY KEY,
    amenity    TEXT NOT NULL DEFAULT '',
    date       TEXT NOT NULL DEFAULT '',
    slot       TEXT NOT NULL DEFAULT '',
    flat_id    TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_society_bookings_slot ON society_bookings (amenity, date, slot);
CREATE INDEX IF NOT EXISTS idx_society_bookings_flat ON society_bookings (flat_id);
CREATE INDEX IF NOT EXISTS idx_society_bookings_date ON society_bookings (date);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS society_bookings`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_society_visitor_sessions",
			Version: "20250101000005",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS society_visitor_sessions (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL DEFAULT '',
    tower      TEXT NOT NULL DEFAULT '',
    flat_id    TEXT NOT NULL DEFAULT '',
    entry_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    exit_at    TIMESTAMPTZ,
    status     TEXT NOT NULL DEFAULT 'in',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_society_sessions_tower_status ON society_visitor_sessions (tower, status);
CREATE INDEX IF NOT EXISTS idx_society_sessions_flat ON society_visitor_sessions (flat_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS society_visitor_sessions`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_society_complaints",
			Version: "20250101000006",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS society_complaints (
    id          TEXT PRIMARY KEY,
    flat_id     TEXT NOT NULL DEFAULT '',
    title       TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    category    TEXT NOT NULL DEFAULT '',
    status      TEXT NOT NULL DEFAULT 'pending',
    resolved_at TIMESTAMPTZ,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_society_complaints_flat ON society_complaints (flat_id);
CREATE INDEX IF NOT EXISTS idx_society_complaints_status ON society_complaints (status);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS society_complaints`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_society_broadcasts",
			Version: "20250101000007",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS society_broadcasts (
    id         TEXT PRIMARY KEY,
    kind       TEXT NOT NULL DEFAULT 'notice',
    tower      TEXT NOT NULL DEFAULT '',
    title      TEXT NOT NULL DEFAULT '',
    message    TEXT NOT NULL DEFAULT '',
    severity   TEXT NOT NULL DEFAULT 'info',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_society_broadcasts_kind ON society_broadcasts (kind);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS society_broadcasts`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_society_activity_log",
			Version: "20250101000008",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS society_activity_log (
    id        TEXT PRIMARY KEY,
    actor     TEXT NOT NULL DEFAULT '',
    action    TEXT NOT NULL DEFAULT '',
    detail    TEXT NOT NULL DEFAULT '',
    timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_society_activity_action ON society_activity_log (action, timestamp);
CREATE INDEX IF NOT EXISTS idx_society_activity_timestamp ON society_activity_log (timestamp);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS society_activity_log`)
				return err
			},
		},
	)
}
