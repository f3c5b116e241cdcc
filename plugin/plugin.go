// Package plugin provides an extensible plugin system for the ledger.
// Plugins hook into lifecycle events (subscriptions, catalogue changes,
// withdrawals) to extend functionality without touching the engine.
package plugin

import (
	"context"
	"time"

	"github.com/reelgate/ledger/id"
	"github.com/reelgate/ledger/plan"
	"github.com/reelgate/ledger/types"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Event payloads
// ──────────────────────────────────────────────────

// SubscribedEvent is emitted after a purchase is accepted and recorded.
type SubscribedEvent struct {
	Identity  string      `json:"identity"`
	Plan      plan.Plan   `json:"plan"`
	ExpiresAt time.Time   `json:"expires_at"`
	Amount    types.Money `json:"amount"`
	PaymentID id.PaymentID `json:"payment_id"`
}

// MovieAddedEvent is emitted after the owner appends a catalogue entry.
type MovieAddedEvent struct {
	ID       id.MovieID `json:"id"`
	Plan     plan.Plan  `json:"plan"`
	Title    string     `json:"title"`
	Position int        `json:"position"`
}

// FundsWithdrawnEvent is emitted after a completed owner payout.
type FundsWithdrawnEvent struct {
	Owner  string      `json:"owner"`
	Amount types.Money `json:"amount"`
	WithdrawalID id.WithdrawalID `json:"withdrawal_id"`
}

// PaymentRejectedEvent is emitted when a purchase fails payment
// validation. No state was mutated and the payment was not retained.
type PaymentRejectedEvent struct {
	Identity string      `json:"identity"`
	Plan     plan.Plan   `json:"plan"`
	Attached types.Money `json:"attached"`
	Required types.Money `json:"required"`
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the engine starts.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, l interface{}) error
}

// OnShutdown is called when the engine is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Ledger event hooks
// ──────────────────────────────────────────────────

// OnSubscribed is called after every accepted purchase, renewal included.
type OnSubscribed interface {
	Plugin
	OnSubscribed(ctx context.Context, ev SubscribedEvent) error
}

// OnMovieAdded is called after a catalogue append.
type OnMovieAdded interface {
	Plugin
	OnMovieAdded(ctx context.Context, ev MovieAddedEvent) error
}

// OnFundsWithdrawn is called after a completed withdrawal.
type OnFundsWithdrawn interface {
	Plugin
	OnFundsWithdrawn(ctx context.Context, ev FundsWithdrawnEvent) error
}

// OnPaymentRejected is called when a purchase fails payment validation.
type OnPaymentRejected interface {
	Plugin
	OnPaymentRejected(ctx context.Context, ev PaymentRejectedEvent) error
}
