package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/xraph/grove/drivers/pgdriver"
)

// Pins on the driver transaction surface runInTx depends on. A driver
// upgrade that renames these breaks the build here instead of at runtime.
var (
	_ = (*pgdriver.PgDB).BeginTxQuery
	_ = (*pgdriver.PgTx).Commit
	_ = (*pgdriver.PgTx).Rollback
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unique index", errors.New(`ERROR: duplicate key value violates unique constraint "idx_society_bills_flat_period" (SQLSTATE 23505)`), true},
		{"foreign key", errors.New("ERROR: insert or update violates foreign key constraint (SQLSTATE 23503)"), false},
		{"no rows", sql.ErrNoRows, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isUniqueViolation(tt.err); got != tt.want {
				t.Errorf("isUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsNoRows(t *testing.T) {
	if !isNoRows(sql.ErrNoRows) {
		t.Error("expected sql.ErrNoRows to match")
	}
	if isNoRows(errors.New("duplicate key value")) {
		t.Error("unique violation must not read as no-rows")
	}
}
