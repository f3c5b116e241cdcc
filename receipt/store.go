package receipt

import "context"

// Store is the persistence interface for money-movement receipts.
// Receipts are append-only.
type Store interface {
	RecordPayment(ctx context.Context, p *Payment) error
	ListPayments(ctx context.Context, opts ListOpts) ([]*Payment, error)

	RecordWithdrawal(ctx context.Context, w *Withdrawal) error
	ListWithdrawals(ctx context.Context, opts ListOpts) ([]*Withdrawal, error)
}

// ListOpts narrows a listing call. Receipts are returned oldest first.
type ListOpts struct {
	Limit  int
	Offset int
}
