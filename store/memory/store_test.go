package memory

import (
	"context"
	"testing"

	"github.com/towertech/societyops/activity"
	"github.com/towertech/societyops/flat"
	"github.com/towertech/societyops/id"
	"github.com/towertech/societyops/types"
)

func TestWindow(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name    string
		offset  int
		limit   int
		wantLen int
		first   int
	}{
		{"no pagination", 0, 0, 5, 1},
		{"offset and limit", 1, 2, 2, 2},
		{"offset past end", 10, 0, 0, 0},
		{"limit past end", 3, 10, 2, 4},
		{"negative offset", -3, 2, 2, 1},
		{"negative limit", 0, -1, 5, 1},
		{"both negative", -5, -5, 5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := window(in, tt.offset, tt.limit)
			if len(got) != tt.wantLen {
				t.Fatalf("window(%d, %d) returned %d items, want %d", tt.offset, tt.limit, len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0] != tt.first {
				t.Errorf("window(%d, %d)[0] = %d, want %d", tt.offset, tt.limit, got[0], tt.first)
			}
		})
	}
}

func TestListNegativePaginationDoesNotPanic(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, unit := range []string{"101", "102", "103"} {
		f := &flat.Flat{
			Entity: types.NewEntity(),
			ID:     id.NewFlatID(),
			Tower:  "A",
			Number: unit,
		}
		entry := activity.New("system", activity.ActionFlatRegistered, f.Label())
		if err := s.CreateFlat(ctx, f, entry); err != nil {
			t.Fatal(err)
		}
	}

	flats, err := s.ListFlats(ctx, flat.ListOpts{Offset: -2, Limit: -1})
	if err != nil {
		t.Fatal(err)
	}
	if len(flats) != 3 {
		t.Errorf("expected all 3 flats, got %d", len(flats))
	}

	entries, err := s.ListActivity(ctx, activity.ListOpts{Offset: -1, Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries, got %d", len(entries))
	}
}
