package complaint

import "testing"

func TestCanAdvance(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to in_progress", StatusPending, StatusInProgress, true},
		{"in_progress to resolved", StatusInProgress, StatusResolved, true},
		{"pending to resolved skip", StatusPending, StatusResolved, true},
		{"resolved to pending", StatusResolved, StatusPending, false},
		{"in_progress to pending", StatusInProgress, StatusPending, false},
		{"resolved to in_progress", StatusResolved, StatusInProgress, false},
		{"pending to pending", StatusPending, StatusPending, false},
		{"resolved to resolved", StatusResolved, StatusResolved, false},
		{"unknown from", Status("open"), StatusResolved, false},
		{"unknown to", StatusPending, Status("closed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanAdvance(tt.from, tt.to); got != tt.want {
				t.Errorf("CanAdvance(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStatusKnown(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusInProgress, StatusResolved} {
		if !s.Known() {
			t.Errorf("expected status %q to be known", s)
		}
	}
	if Status("escalated").Known() {
		t.Error("expected unknown status to report false")
	}
}
