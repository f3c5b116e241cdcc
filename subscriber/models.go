// Package subscriber holds the per-identity subscription record.
package subscriber

import (
	"time"

	"github.com/reelgate/ledger/plan"
	"github.com/reelgate/ledger/types"
)

// Record is the stored subscription state for one caller identity.
//
// Plan is the most recently purchased tier and is deliberately
// stale-tolerant: it is not reset when the record expires. Readers that
// gate access must compare ExpiresAt against their own notion of now.
type Record struct {
	types.Entity
	Identity  string    `json:"identity"`
	Plan      plan.Plan `json:"plan"`
	ExpiresAt time.Time `json:"expires_at"` // zero means never subscribed
}

// Active reports whether the record grants access at the given instant.
// Expiry is exclusive: a record expiring exactly at now is inactive.
func (r *Record) Active(now time.Time) bool {
	return r.ExpiresAt.After(now)
}

// ActivePlan returns the plan currently in force, or plan.None when the
// record has lapsed or never existed.
func (r *Record) ActivePlan(now time.Time) plan.Plan {
	if !r.Active(now) {
		return plan.None
	}
	return r.Plan
}

// Remaining returns the time left on the subscription, or zero when lapsed.
func (r *Record) Remaining(now time.Time) time.Duration {
	if !r.Active(now) {
		return 0
	}
	return r.ExpiresAt.Sub(now)
}
