// Package memory provides an in-process ledger store. It is the
// canonical backend: state lives in maps and slices behind one RWMutex,
// which preserves the serialized, atomic semantics the engine assumes.
package memory

import (
	"context"
	"sync"

	"github.com/reelgate/ledger"
	"github.com/reelgate/ledger/catalog"
	"github.com/reelgate/ledger/receipt"
	"github.com/reelgate/ledger/store"
	"github.com/reelgate/ledger/subscriber"
	"github.com/reelgate/ledger/types"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

type Store struct {
	mu sync.RWMutex

	// Subscriber records, keyed by identity
	subscribers map[string]*subscriber.Record

	// Movie catalogue, insertion order
	movies []*catalog.Movie

	// Money-movement receipts, append order
	payments    []*receipt.Payment
	withdrawals []*receipt.Withdrawal

	// Held balance counter
	balance types.Money
}

func New() *Store {
	return &Store{
		subscribers: make(map[string]*subscriber.Record),
		movies:      make([]*catalog.Movie, 0),
		payments:    make([]*receipt.Payment, 0),
		withdrawals: make([]*receipt.Withdrawal, 0),
		balance:     types.Wei(0),
	}
}

// Subscriber store implementation

func (s *Store) GetSubscriber(_ context.Context, identity string) (*subscriber.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.subscribers[identity]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, ledger.ErrSubscriberNotFound
}

func (s *Store) PutSubscriber(_ context.Context, r *subscriber.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *r
	s.subscribers[r.Identity] = &clone
	return nil
}

func (s *Store) ListSubscribers(_ context.Context, opts subscriber.ListOpts) ([]*subscriber.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*subscriber.Record, 0, len(s.subscribers))
	for _, r := range s.subscribers {
		clone := *r
		result = append(result, &clone)
	}
	return window(result, opts.Offset, opts.Limit), nil
}

// Catalogue store implementation

func (s *Store) AppendMovie(_ context.Context, m *catalog.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.Position = len(s.movies) + 1
	clone := *m
	s.movies = append(s.movies, &clone)
	return nil
}

func (s *Store) ListMovies(_ context.Context, opts catalog.ListOpts) ([]*catalog.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*catalog.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		clone := *m
		result = append(result, &clone)
	}
	return window(result, opts.Offset, opts.Limit), nil
}

// Receipt store implementation

func (s *Store) RecordPayment(_ context.Context, p *receipt.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *p
	s.payments = append(s.payments, &clone)
	return nil
}

func (s *Store) ListPayments(_ context.Context, opts receipt.ListOpts) ([]*receipt.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*receipt.Payment, 0, len(s.payments))
	for _, p := range s.payments {
		clone := *p
		result = append(result, &clone)
	}
	return window(result, opts.Offset, opts.Limit), nil
}

func (s *Store) RecordWithdrawal(_ context.Context, w *receipt.Withdrawal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *w
	s.withdrawals = append(s.withdrawals, &clone)
	return nil
}

func (s *Store) ListWithdrawals(_ context.Context, opts receipt.ListOpts) ([]*receipt.Withdrawal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*receipt.Withdrawal, 0, len(s.withdrawals))
	for _, w := range s.withdrawals {
		clone := *w
		result = append(result, &clone)
	}
	return window(result, opts.Offset, opts.Limit), nil
}

// Balance store implementation

func (s *Store) Balance(_ context.Context) (types.Money, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balance, nil
}

func (s *Store) Deposit(_ context.Context, amount types.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balance = s.balance.Add(amount)
	return nil
}

func (s *Store) ResetBalance(_ context.Context) (types.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cleared := s.balance
	s.balance = types.Zero(cleared.Currency)
	return cleared, nil
}

// Core store implementation

func (s *Store) Migrate(_ context.Context) error { return nil }

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Close() error { return nil }

// window applies offset/limit slicing to a listing result.
func window[T any](result []T, offset, limit int) []T {
	start := offset
	if start > len(result) {
		start = len(result)
	}
	end := start + limit
	if limit == 0 || end > len(result) {
		end = len(result)
	}
	return result[start:end]
}
