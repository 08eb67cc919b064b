package sqlite

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/xraph/grove/drivers/sqlitedriver"
)

// Pins on the driver transaction surface runInTx depends on. A driver
// upgrade that renames these breaks the build here instead of at runtime.
var (
	_ = (*sqlitedriver.SqliteDB).BeginTxQuery
	_ = (*sqlitedriver.SqliteTx).Commit
	_ = (*sqlitedriver.SqliteTx).Rollback
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"unique index", errors.New("constraint failed: UNIQUE constraint failed: society_flats.tower, society_flats.number (2067)"), true},
		{"other constraint", errors.New("constraint failed: NOT NULL constraint failed: society_flats.tower"), false},
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
	if isNoRows(errors.New("UNIQUE constraint failed")) {
		t.Error("unique violation must not read as no-rows")
	}
}
