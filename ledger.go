package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/reelgate/ledger/catalog"
	"github.com/reelgate/ledger/id"
	"github.com/reelgate/ledger/plan"
	"github.com/reelgate/ledger/plugin"
	"github.com/reelgate/ledger/receipt"
	"github.com/reelgate/ledger/store"
	"github.com/reelgate/ledger/subscriber"
	"github.com/reelgate/ledger/types"
)

// Ledger is the subscription engine. It owns all state (subscriber
// records, the movie catalogue, and the held balance) and enforces all
// rules: exact-price payment validation, expiry extension, owner gating,
// and all-or-nothing withdrawal.
//
// Every invocation is atomic and serialized: a single mutex guards all
// mutating operations, so no interleaving of partial effects is ever
// visible. Current time is sampled once at the start of an operation.
type Ledger struct {
	mu sync.Mutex // one ledger instance = one critical section

	store    store.Store
	plugins  *plugin.Registry
	logger   *slog.Logger
	treasury Treasury

	owner string
	now   func() time.Time
}

// New creates a new Ledger instance. The owner identity is fixed for the
// lifetime of the ledger and cannot be changed afterwards.
func New(owner string, s store.Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:    s,
		plugins:  plugin.NewRegistry(),
		logger:   slog.Default(),
		treasury: NopTreasury{},
		owner:    owner,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Option configures a Ledger instance.
type Option func(*Ledger)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
		l.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(l *Ledger) {
		_ = l.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithTreasury sets the outbound transfer collaborator used by Withdraw.
func WithTreasury(t Treasury) Option {
	return func(l *Ledger) {
		l.treasury = t
	}
}

// WithClock overrides the time source. Each operation samples the clock
// exactly once. Intended for tests and deterministic replays.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// Start migrates the store and initializes plugins.
func (l *Ledger) Start(ctx context.Context) error {
	if err := l.store.Migrate(ctx); err != nil {
		return err
	}

	l.plugins.EmitInit(ctx, l)

	l.logger.Info("ledger started",
		"owner", l.owner,
		"term", plan.Term,
	)

	return nil
}

// Stop shuts down the Ledger.
func (l *Ledger) Stop() error {
	l.plugins.EmitShutdown(context.Background())
	return l.store.Close()
}

// Owner returns the owner identity fixed at construction.
func (l *Ledger) Owner() string { return l.owner }

// ──────────────────────────────────────────────────
// Plan purchase
// ──────────────────────────────────────────────────

// SubscribeBasic purchases the Basic tier for identity. The attached
// payment must equal the Basic price exactly.
func (l *Ledger) SubscribeBasic(ctx context.Context, identity string, payment types.Money) (*subscriber.Record, error) {
	return l.subscribe(ctx, identity, plan.Basic, payment)
}

// SubscribeStandard purchases the Standard tier for identity.
func (l *Ledger) SubscribeStandard(ctx context.Context, identity string, payment types.Money) (*subscriber.Record, error) {
	return l.subscribe(ctx, identity, plan.Standard, payment)
}

// SubscribePremium purchases the Premium tier for identity.
func (l *Ledger) SubscribePremium(ctx context.Context, identity string, payment types.Money) (*subscriber.Record, error) {
	return l.subscribe(ctx, identity, plan.Premium, payment)
}

// subscribe validates the payment, extends the subscriber record, and
// credits the held balance. Validation fully precedes mutation: a failed
// purchase leaves the ledger untouched and the payment is not retained.
func (l *Ledger) subscribe(ctx context.Context, identity string, p plan.Plan, payment types.Money) (*subscriber.Record, error) {
	if identity == "" {
		return nil, fmt.Errorf("%w: empty identity", ErrInvalidInput)
	}
	if !p.Purchasable() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlan, p)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	price := p.Price()
	if !payment.Equal(price) {
		l.plugins.EmitPaymentRejected(ctx, plugin.PaymentRejectedEvent{
			Identity: identity,
			Plan:     p,
			Attached: payment,
			Required: price,
		})
		l.logger.Warn("payment rejected",
			"identity", identity,
			"plan", p.String(),
			"attached", payment.String(),
			"required", price.String(),
		)
		return nil, fmt.Errorf("%w: attached %s, required %s", ErrInvalidPayment, payment, price)
	}

	rec, err := l.store.GetSubscriber(ctx, identity)
	if err != nil {
		if !IsNotFound(err) {
			return nil, err
		}
		rec = &subscriber.Record{Entity: types.NewEntity(), Identity: identity}
	}

	// Renewal extends from the later of now and the current expiry:
	// renewing early keeps the remaining time, renewing late earns no
	// retroactive credit. Switching plans mid-term overwrites the plan
	// tag immediately; remaining time carries over under the new tier.
	base := now
	if rec.ExpiresAt.After(base) {
		base = rec.ExpiresAt
	}

	rec.Plan = p
	rec.ExpiresAt = base.Add(plan.Term)
	rec.Touch()

	if err := l.store.PutSubscriber(ctx, rec); err != nil {
		return nil, err
	}
	if err := l.store.Deposit(ctx, payment); err != nil {
		return nil, err
	}

	pay := &receipt.Payment{
		Entity:   types.NewEntity(),
		ID:       id.NewPaymentID(),
		Identity: identity,
		Plan:     p,
		Amount:   payment,
		PaidAt:   now,
	}
	if err := l.store.RecordPayment(ctx, pay); err != nil {
		return nil, err
	}

	l.plugins.EmitSubscribed(ctx, plugin.SubscribedEvent{
		Identity:  identity,
		Plan:      p,
		ExpiresAt: rec.ExpiresAt,
		Amount:    payment,
		PaymentID: pay.ID,
	})

	l.logger.Info("subscribed",
		"identity", identity,
		"plan", p.String(),
		"expires_at", rec.ExpiresAt,
		"amount", payment.String(),
	)

	return rec, nil
}

// ──────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────

// CheckSubscription returns the stored (plan, expiry) pair verbatim.
// The plan is NOT zeroed after expiry: the last-known tier stays visible
// for display and history. Callers gating access must compare the expiry
// against the current time themselves (AvailableMovies does).
func (l *Ledger) CheckSubscription(ctx context.Context, identity string) (plan.Plan, time.Time, error) {
	rec, err := l.store.GetSubscriber(ctx, identity)
	if err != nil {
		if IsNotFound(err) {
			return plan.None, time.Time{}, nil
		}
		return plan.None, time.Time{}, err
	}
	return rec.Plan, rec.ExpiresAt, nil
}

// Subscriber returns the full stored record for an identity, or a
// not-found error when the identity never subscribed.
func (l *Ledger) Subscriber(ctx context.Context, identity string) (*subscriber.Record, error) {
	return l.store.GetSubscriber(ctx, identity)
}

// AvailableMovies returns the catalogue entries visible to identity at
// this instant, in insertion order. An identity whose subscription has
// lapsed, or that never subscribed, sees an empty catalogue.
func (l *Ledger) AvailableMovies(ctx context.Context, identity string) ([]*catalog.Movie, error) {
	now := l.now()

	active := plan.None
	rec, err := l.store.GetSubscriber(ctx, identity)
	if err == nil {
		active = rec.ActivePlan(now)
	} else if !IsNotFound(err) {
		return nil, err
	}

	if active == plan.None {
		return []*catalog.Movie{}, nil
	}

	all, err := l.store.ListMovies(ctx, catalog.ListOpts{})
	if err != nil {
		return nil, err
	}

	visible := make([]*catalog.Movie, 0, len(all))
	for _, m := range all {
		if active.Covers(m.Plan) {
			visible = append(visible, m)
		}
	}
	return visible, nil
}

// Catalogue returns the full catalogue in insertion order, regardless of
// the caller's subscription state.
func (l *Ledger) Catalogue(ctx context.Context, opts catalog.ListOpts) ([]*catalog.Movie, error) {
	return l.store.ListMovies(ctx, opts)
}

// Balance returns the currently held funds.
func (l *Ledger) Balance(ctx context.Context) (types.Money, error) {
	return l.store.Balance(ctx)
}

// ──────────────────────────────────────────────────
// Catalogue management (owner only)
// ──────────────────────────────────────────────────

// AddMovie appends a movie to the catalogue under the given tier.
// Only the owner may call it. Titles are not validated: duplicates are
// permitted and entries are never removed or re-tiered.
func (l *Ledger) AddMovie(ctx context.Context, caller string, p plan.Plan, title string) (*catalog.Movie, error) {
	if caller != l.owner {
		return nil, ErrUnauthorized
	}
	if !p.Purchasable() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlan, p)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	m := &catalog.Movie{
		Entity: types.NewEntity(),
		ID:     id.NewMovieID(),
		Plan:   p,
		Title:  title,
	}
	if err := l.store.AppendMovie(ctx, m); err != nil {
		return nil, err
	}

	l.plugins.EmitMovieAdded(ctx, plugin.MovieAddedEvent{
		ID:       m.ID,
		Plan:     m.Plan,
		Title:    m.Title,
		Position: m.Position,
	})

	l.logger.Info("movie added",
		"id", m.ID.String(),
		"plan", p.String(),
		"title", title,
		"position", m.Position,
	)

	return m, nil
}

// ──────────────────────────────────────────────────
// Withdrawal (owner only)
// ──────────────────────────────────────────────────

// Withdraw transfers the entire held balance to the owner and zeroes the
// counter. All-or-nothing: the counter is reset only after the treasury
// confirms the transfer, so a refused transfer leaves the balance intact.
func (l *Ledger) Withdraw(ctx context.Context, caller string) (types.Money, error) {
	if caller != l.owner {
		return types.Money{}, ErrUnauthorized
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	balance, err := l.store.Balance(ctx)
	if err != nil {
		return types.Money{}, err
	}

	if err := l.treasury.Transfer(ctx, l.owner, balance); err != nil {
		l.logger.Error("withdrawal transfer refused",
			"owner", l.owner,
			"amount", balance.String(),
			"error", err,
		)
		return types.Money{}, fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	if _, err := l.store.ResetBalance(ctx); err != nil {
		return types.Money{}, err
	}

	wd := &receipt.Withdrawal{
		Entity:      types.NewEntity(),
		ID:          id.NewWithdrawalID(),
		Owner:       l.owner,
		Amount:      balance,
		WithdrawnAt: now,
	}
	if err := l.store.RecordWithdrawal(ctx, wd); err != nil {
		return types.Money{}, err
	}

	l.plugins.EmitFundsWithdrawn(ctx, plugin.FundsWithdrawnEvent{
		Owner:        l.owner,
		Amount:       balance,
		WithdrawalID: wd.ID,
	})

	l.logger.Info("funds withdrawn",
		"owner", l.owner,
		"amount", balance.String(),
	)

	return balance, nil
}

// ──────────────────────────────────────────────────
// Receipts (owner only)
// ──────────────────────────────────────────────────

// Payments lists payment receipts, oldest first. Owner only.
func (l *Ledger) Payments(ctx context.Context, caller string, opts receipt.ListOpts) ([]*receipt.Payment, error) {
	if caller != l.owner {
		return nil, ErrUnauthorized
	}
	return l.store.ListPayments(ctx, opts)
}

// Withdrawals lists withdrawal receipts, oldest first. Owner only.
func (l *Ledger) Withdrawals(ctx context.Context, caller string, opts receipt.ListOpts) ([]*receipt.Withdrawal, error) {
	if caller != l.owner {
		return nil, ErrUnauthorized
	}
	return l.store.ListWithdrawals(ctx, opts)
}
