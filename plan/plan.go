// Package plan defines the fixed subscription tiers and their protocol prices.
//
// Unlike a configurable billing catalogue, the tier set is a protocol
// constant: three purchasable tiers with fixed prices and a fixed 30-day
// term, plus the None zero value for identities that never subscribed.
package plan

import (
	"fmt"
	"time"

	"github.com/reelgate/ledger/types"
)

// Plan is a subscription tier.
type Plan uint8

// Tier constants. The numeric values are part of the wire/storage format.
const (
	None     Plan = 0
	Basic    Plan = 1
	Standard Plan = 2
	Premium  Plan = 3
)

// Term is the fixed subscription duration purchased by a single payment.
const Term = 30 * 24 * time.Hour

// Tier prices in wei. Immutable protocol constants.
var (
	BasicPrice    = types.Wei(1_000_000_000_000_000) // 0.001 ETH
	StandardPrice = types.Wei(3_000_000_000_000_000) // 0.003 ETH
	PremiumPrice  = types.Wei(5_000_000_000_000_000) // 0.005 ETH
)

// Purchasable reports whether the plan can be bought (everything but None).
func (p Plan) Purchasable() bool {
	return p == Basic || p == Standard || p == Premium
}

// Price returns the fixed fee for a purchasable plan.
// It panics for None or unknown values (programming error).
func (p Plan) Price() types.Money {
	switch p {
	case Basic:
		return BasicPrice
	case Standard:
		return StandardPrice
	case Premium:
		return PremiumPrice
	default:
		panic(fmt.Sprintf("plan: no price for plan %d", p))
	}
}

// Rank returns the inclusion rank used for catalogue visibility.
// None ranks zero and is excluded from every at-or-below test.
func (p Plan) Rank() int {
	switch p {
	case Basic:
		return 1
	case Standard:
		return 2
	case Premium:
		return 3
	default:
		return 0
	}
}

// Covers reports whether a subscriber on plan p may see content gated at
// tier t. None covers nothing and nothing covers None.
func (p Plan) Covers(t Plan) bool {
	if p == None || t == None {
		return false
	}
	return t.Rank() <= p.Rank()
}

// String returns the lowercase tier name.
func (p Plan) String() string {
	switch p {
	case None:
		return "none"
	case Basic:
		return "basic"
	case Standard:
		return "standard"
	case Premium:
		return "premium"
	default:
		return fmt.Sprintf("plan(%d)", uint8(p))
	}
}

// Parse converts a tier name into a Plan.
func Parse(s string) (Plan, error) {
	switch s {
	case "none", "":
		return None, nil
	case "basic":
		return Basic, nil
	case "standard":
		return Standard, nil
	case "premium":
		return Premium, nil
	default:
		return None, fmt.Errorf("plan: unknown plan %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Plan) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Plan) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// All returns the purchasable tiers in ascending rank order.
func All() []Plan {
	return []Plan{Basic, Standard, Premium}
}
