package subscriber

import (
	"testing"
	"time"

	"github.com/reelgate/ledger/plan"
)

func TestActive(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{"future expiry", now.Add(time.Hour), true},
		{"past expiry", now.Add(-time.Hour), false},
		{"exactly at expiry", now, false}, // expiry instant is exclusive
		{"zero expiry", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Record{Identity: "alice", Plan: plan.Basic, ExpiresAt: tt.expiresAt}
			if got := r.Active(now); got != tt.want {
				t.Errorf("Active: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestActivePlan(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	r := &Record{Identity: "alice", Plan: plan.Premium, ExpiresAt: now.Add(time.Hour)}
	if got := r.ActivePlan(now); got != plan.Premium {
		t.Errorf("active record: got %v, want premium", got)
	}

	// The stored plan survives expiry; only the active view zeroes out.
	r.ExpiresAt = now.Add(-time.Hour)
	if got := r.ActivePlan(now); got != plan.None {
		t.Errorf("lapsed record: got %v, want none", got)
	}
	if r.Plan != plan.Premium {
		t.Errorf("stored plan: got %v, want premium", r.Plan)
	}
}

func TestRemaining(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	r := &Record{Identity: "alice", Plan: plan.Basic, ExpiresAt: now.Add(48 * time.Hour)}
	if got := r.Remaining(now); got != 48*time.Hour {
		t.Errorf("Remaining: got %v, want 48h", got)
	}

	r.ExpiresAt = now.Add(-time.Hour)
	if got := r.Remaining(now); got != 0 {
		t.Errorf("lapsed Remaining: got %v, want 0", got)
	}
}
