// Package receipt records the ledger's money movements: one payment
// receipt per accepted subscription fee and one withdrawal receipt per
// completed owner payout.
package receipt

import (
	"time"

	"github.com/reelgate/ledger/id"
	"github.com/reelgate/ledger/plan"
	"github.com/reelgate/ledger/types"
)

// Payment is the record of one accepted subscription fee.
type Payment struct {
	types.Entity
	ID       id.PaymentID `json:"id"`
	Identity string       `json:"identity"`
	Plan     plan.Plan    `json:"plan"`
	Amount   types.Money  `json:"amount"`
	PaidAt   time.Time    `json:"paid_at"`
}

// Withdrawal is the record of one completed owner payout.
type Withdrawal struct {
	types.Entity
	ID          id.WithdrawalID `json:"id"`
	Owner       string          `json:"owner"`
	Amount      types.Money     `json:"amount"`
	WithdrawnAt time.Time       `json:"withdrawn_at"`
}
