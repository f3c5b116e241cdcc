// Package catalog holds the append-only movie catalogue.
package catalog

import (
	"github.com/reelgate/ledger/id"
	"github.com/reelgate/ledger/plan"
	"github.com/reelgate/ledger/types"
)

// Movie is one catalogue entry. A movie belongs to exactly one tier,
// fixed at insertion; there is no removal or re-tiering.
type Movie struct {
	types.Entity
	ID       id.MovieID `json:"id"`
	Plan     plan.Plan  `json:"plan"`
	Title    string     `json:"title"`
	Position int        `json:"position"` // insertion order, starting at 1
}
