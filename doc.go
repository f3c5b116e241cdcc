// Package ledger provides a pay-to-access subscription ledger for tiered
// content catalogues.
//
// Ledger is designed as a library, not a service. Import it directly into
// your Go application: the host presents a caller identity and an attached
// payment, invokes one of a small set of operations, and reads back state.
// It provides:
//
//   - Three fixed tiers (Basic, Standard, Premium) with protocol-constant
//     prices and a fixed 30-day term per purchase
//   - Exact-price payment validation with zero state effect on mismatch
//   - Expiry extension semantics: renewing early keeps remaining time,
//     renewing late earns no retroactive credit
//   - An append-only, tier-gated movie catalogue managed by the owner
//   - Owner-gated, all-or-nothing withdrawal of pooled funds
//   - Lifecycle events (Subscribed, MovieAdded, FundsWithdrawn) via a
//     typed plugin registry
//
// # Quick Start
//
// Create a ledger with your preferred store:
//
//	import (
//	    "github.com/reelgate/ledger"
//	    "github.com/reelgate/ledger/store/memory"
//	)
//
//	l := ledger.New("0xOwner", memory.New())
//	if err := l.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer l.Stop()
//
// # Core Concepts
//
// Purchases attach an exact payment in the smallest native currency unit:
//
//	rec, err := l.SubscribeBasic(ctx, "0xAlice", plan.BasicPrice)
//
// Queries are stale-tolerant by design. CheckSubscription returns the
// stored pair verbatim even after expiry; AvailableMovies is the
// time-aware gate:
//
//	p, expiry, _ := l.CheckSubscription(ctx, "0xAlice")
//	movies, _ := l.AvailableMovies(ctx, "0xAlice")
//
// The owner manages the catalogue and collects revenue:
//
//	l.AddMovie(ctx, owner, plan.Premium, "Stalker")
//	amount, err := l.Withdraw(ctx, owner)
//
// # Concurrency
//
// Every operation executes atomically behind a single mutex: one ledger
// instance is one critical section. Time is sampled once per operation
// from an injectable clock (WithClock), so behavior is reproducible in
// tests.
//
// All monetary calculations use integer arithmetic on the smallest
// currency unit; the native currency is denominated in wei.
//
// # TypeID
//
// Generated entities use TypeID for globally unique, type-safe identifiers:
//
//	movie_01h2xcejqtf2nbrexx3vqjhp41  // Catalogue entry
//	pay_01h2xcejqtf2nbrexx3vqjhp41    // Payment receipt
//	wd_01h455vb4pex5vsknk084sn02q     // Withdrawal receipt
//
// Subscriber records are keyed by the caller's own identity string and
// carry no generated ID.
package ledger
