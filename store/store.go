// Package store defines the unified storage interface for ledger state.
package store

import (
	"context"

	"github.com/reelgate/ledger/catalog"
	"github.com/reelgate/ledger/receipt"
	"github.com/reelgate/ledger/subscriber"
	"github.com/reelgate/ledger/types"
)

// Store is the unified storage interface for all ledger state: subscriber
// records, the movie catalogue, money-movement receipts, and the held
// balance. Methods are declared explicitly rather than by embedding the
// per-entity interfaces to avoid naming conflicts.
//
// The engine serializes every mutating operation, so implementations do
// not need cross-method transactional coupling; each method must still be
// individually atomic.
type Store interface {
	// Subscriber methods
	GetSubscriber(ctx context.Context, identity string) (*subscriber.Record, error)
	PutSubscriber(ctx context.Context, r *subscriber.Record) error
	ListSubscribers(ctx context.Context, opts subscriber.ListOpts) ([]*subscriber.Record, error)

	// Catalogue methods
	AppendMovie(ctx context.Context, m *catalog.Movie) error
	ListMovies(ctx context.Context, opts catalog.ListOpts) ([]*catalog.Movie, error)

	// Receipt methods
	RecordPayment(ctx context.Context, p *receipt.Payment) error
	ListPayments(ctx context.Context, opts receipt.ListOpts) ([]*receipt.Payment, error)
	RecordWithdrawal(ctx context.Context, w *receipt.Withdrawal) error
	ListWithdrawals(ctx context.Context, opts receipt.ListOpts) ([]*receipt.Withdrawal, error)

	// Balance methods. The held balance is an explicit counter kept in
	// the ledger's native currency.
	Balance(ctx context.Context) (types.Money, error)
	Deposit(ctx context.Context, amount types.Money) error
	// ResetBalance zeroes the held balance and returns the amount cleared.
	ResetBalance(ctx context.Context) (types.Money, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
