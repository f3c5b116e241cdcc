package ledger

import (
	"context"

	"github.com/reelgate/ledger/types"
)

// Treasury moves withdrawn funds out of the ledger to the owner. It is
// the ledger's only outbound money interface: payment custody on the way
// in is the platform's concern, but a withdrawal must hand the pooled
// balance to a real payout mechanism.
//
// Transfer must be all-or-nothing. If it returns an error the ledger
// treats the payout as refused and leaves the held balance unchanged.
type Treasury interface {
	Transfer(ctx context.Context, to string, amount types.Money) error
}

// TreasuryFunc adapts a plain function to the Treasury interface.
type TreasuryFunc func(ctx context.Context, to string, amount types.Money) error

// Transfer implements Treasury.
func (f TreasuryFunc) Transfer(ctx context.Context, to string, amount types.Money) error {
	return f(ctx, to, amount)
}

// NopTreasury accepts every transfer without moving funds. It is the
// default, for deployments where the balance counter is the only
// accounting required.
type NopTreasury struct{}

// Transfer implements Treasury.
func (NopTreasury) Transfer(context.Context, string, types.Money) error { return nil }
