package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reelgate/ledger"
	"github.com/reelgate/ledger/catalog"
	"github.com/reelgate/ledger/id"
	"github.com/reelgate/ledger/plan"
	"github.com/reelgate/ledger/receipt"
	"github.com/reelgate/ledger/subscriber"
	"github.com/reelgate/ledger/types"
)

func TestSubscriberRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.GetSubscriber(ctx, "alice"); !errors.Is(err, ledger.ErrSubscriberNotFound) {
		t.Errorf("missing subscriber: got %v, want ErrSubscriberNotFound", err)
	}

	rec := &subscriber.Record{
		Entity:    types.NewEntity(),
		Identity:  "alice",
		Plan:      plan.Standard,
		ExpiresAt: time.Now().Add(plan.Term),
	}
	if err := s.PutSubscriber(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetSubscriber(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if got.Plan != plan.Standard {
		t.Errorf("plan: got %v, want standard", got.Plan)
	}
	if !got.ExpiresAt.Equal(rec.ExpiresAt) {
		t.Errorf("expiry: got %v, want %v", got.ExpiresAt, rec.ExpiresAt)
	}

	// Returned records are copies: mutating one must not leak back.
	got.Plan = plan.Premium
	again, _ := s.GetSubscriber(ctx, "alice")
	if again.Plan != plan.Standard {
		t.Error("store returned a shared record")
	}
}

func TestListSubscribers(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, identity := range []string{"a", "b", "c"} {
		rec := &subscriber.Record{Entity: types.NewEntity(), Identity: identity, Plan: plan.Basic}
		if err := s.PutSubscriber(ctx, rec); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.ListSubscribers(ctx, subscriber.ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("got %d records, want 3", len(all))
	}

	limited, err := s.ListSubscribers(ctx, subscriber.ListOpts{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("got %d records, want 2", len(limited))
	}
}

func TestAppendMovieAssignsPositions(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i, title := range []string{"first", "second", "third"} {
		m := &catalog.Movie{Entity: types.NewEntity(), ID: id.NewMovieID(), Plan: plan.Basic, Title: title}
		if err := s.AppendMovie(ctx, m); err != nil {
			t.Fatal(err)
		}
		if m.Position != i+1 {
			t.Errorf("position: got %d, want %d", m.Position, i+1)
		}
	}

	movies, err := s.ListMovies(ctx, catalog.ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	for i, m := range movies {
		if m.Position != i+1 {
			t.Errorf("listing position %d: got %d", i, m.Position)
		}
	}

	// Offset/limit paging over insertion order.
	page, err := s.ListMovies(ctx, catalog.ListOpts{Offset: 1, Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 1 || page[0].Title != "second" {
		t.Errorf("page: got %+v, want [second]", page)
	}
}

func TestBalanceLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	bal, err := s.Balance(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !bal.IsZero() {
		t.Errorf("initial balance: got %v, want zero", bal)
	}

	if err := s.Deposit(ctx, types.Wei(100)); err != nil {
		t.Fatal(err)
	}
	if err := s.Deposit(ctx, types.Wei(250)); err != nil {
		t.Fatal(err)
	}

	bal, _ = s.Balance(ctx)
	if !bal.Equal(types.Wei(350)) {
		t.Errorf("balance: got %v, want 350 wei", bal)
	}

	cleared, err := s.ResetBalance(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !cleared.Equal(types.Wei(350)) {
		t.Errorf("cleared: got %v, want 350 wei", cleared)
	}
	bal, _ = s.Balance(ctx)
	if !bal.IsZero() {
		t.Errorf("balance after reset: got %v, want zero", bal)
	}
}

func TestReceiptOrdering(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, identity := range []string{"a", "b", "c"} {
		p := &receipt.Payment{
			Entity:   types.NewEntity(),
			ID:       id.NewPaymentID(),
			Identity: identity,
			Plan:     plan.Basic,
			Amount:   plan.BasicPrice,
			PaidAt:   time.Now(),
		}
		if err := s.RecordPayment(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	pays, err := s.ListPayments(ctx, receipt.ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(pays) != 3 {
		t.Fatalf("got %d payments, want 3", len(pays))
	}
	for i, want := range []string{"a", "b", "c"} {
		if pays[i].Identity != want {
			t.Errorf("payment %d: got %s, want %s", i, pays[i].Identity, want)
		}
	}

	w := &receipt.Withdrawal{
		Entity:      types.NewEntity(),
		ID:          id.NewWithdrawalID(),
		Owner:       "owner",
		Amount:      types.Wei(3_000_000_000_000_000),
		WithdrawnAt: time.Now(),
	}
	if err := s.RecordWithdrawal(ctx, w); err != nil {
		t.Fatal(err)
	}
	wds, err := s.ListWithdrawals(ctx, receipt.ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(wds) != 1 || wds[0].Owner != "owner" {
		t.Errorf("withdrawals: got %+v", wds)
	}
}
