package mongo

import (
	"time"

	"github.com/reelgate/ledger/catalog"
	"github.com/reelgate/ledger/id"
	"github.com/reelgate/ledger/plan"
	"github.com/reelgate/ledger/receipt"
	"github.com/reelgate/ledger/subscriber"
	"github.com/reelgate/ledger/types"
)

// subscriberModel mirrors subscriber.Record for document storage.
// The caller identity is the natural key.
type subscriberModel struct {
	Identity  string    `bson:"_id"`
	Plan      string    `bson:"plan"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toSubscriberModel(r *subscriber.Record) *subscriberModel {
	return &subscriberModel{
		Identity:  r.Identity,
		Plan:      r.Plan.String(),
		ExpiresAt: r.ExpiresAt,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func fromSubscriberModel(m *subscriberModel) (*subscriber.Record, error) {
	p, err := plan.Parse(m.Plan)
	if err != nil {
		return nil, err
	}
	return &subscriber.Record{
		Entity:    types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		Identity:  m.Identity,
		Plan:      p,
		ExpiresAt: m.ExpiresAt,
	}, nil
}

// movieModel mirrors catalog.Movie.
type movieModel struct {
	ID        string    `bson:"_id"`
	Plan      string    `bson:"plan"`
	Title     string    `bson:"title"`
	Position  int       `bson:"position"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toMovieModel(m *catalog.Movie) *movieModel {
	return &movieModel{
		ID:        m.ID.String(),
		Plan:      m.Plan.String(),
		Title:     m.Title,
		Position:  m.Position,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func fromMovieModel(m *movieModel) (*catalog.Movie, error) {
	p, err := plan.Parse(m.Plan)
	if err != nil {
		return nil, err
	}
	movieID, err := id.ParseMovieID(m.ID)
	if err != nil {
		return nil, err
	}
	return &catalog.Movie{
		Entity:   types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:       movieID,
		Plan:     p,
		Title:    m.Title,
		Position: m.Position,
	}, nil
}

// paymentModel mirrors receipt.Payment.
type paymentModel struct {
	ID        string    `bson:"_id"`
	Identity  string    `bson:"identity"`
	Plan      string    `bson:"plan"`
	AmountWei int64     `bson:"amount_wei"`
	Currency  string    `bson:"currency"`
	PaidAt    time.Time `bson:"paid_at"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toPaymentModel(p *receipt.Payment) *paymentModel {
	return &paymentModel{
		ID:        p.ID.String(),
		Identity:  p.Identity,
		Plan:      p.Plan.String(),
		AmountWei: p.Amount.Amount,
		Currency:  p.Amount.Currency,
		PaidAt:    p.PaidAt,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func fromPaymentModel(m *paymentModel) (*receipt.Payment, error) {
	p, err := plan.Parse(m.Plan)
	if err != nil {
		return nil, err
	}
	payID, err := id.ParsePaymentID(m.ID)
	if err != nil {
		return nil, err
	}
	return &receipt.Payment{
		Entity:   types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:       payID,
		Identity: m.Identity,
		Plan:     p,
		Amount:   types.Money{Amount: m.AmountWei, Currency: m.Currency},
		PaidAt:   m.PaidAt,
	}, nil
}

// withdrawalModel mirrors receipt.Withdrawal.
type withdrawalModel struct {
	ID          string    `bson:"_id"`
	Owner       string    `bson:"owner"`
	AmountWei   int64     `bson:"amount_wei"`
	Currency    string    `bson:"currency"`
	WithdrawnAt time.Time `bson:"withdrawn_at"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toWithdrawalModel(w *receipt.Withdrawal) *withdrawalModel {
	return &withdrawalModel{
		ID:          w.ID.String(),
		Owner:       w.Owner,
		AmountWei:   w.Amount.Amount,
		Currency:    w.Amount.Currency,
		WithdrawnAt: w.WithdrawnAt,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

func fromWithdrawalModel(m *withdrawalModel) (*receipt.Withdrawal, error) {
	wdID, err := id.ParseWithdrawalID(m.ID)
	if err != nil {
		return nil, err
	}
	return &receipt.Withdrawal{
		Entity:      types.Entity{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
		ID:          wdID,
		Owner:       m.Owner,
		Amount:      types.Money{Amount: m.AmountWei, Currency: m.Currency},
		WithdrawnAt: m.WithdrawnAt,
	}, nil
}

// balanceModel is the singleton held-balance document.
type balanceModel struct {
	ID        string    `bson:"_id"`
	AmountWei int64     `bson:"amount_wei"`
	Currency  string    `bson:"currency"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// balanceDocID is the fixed _id of the singleton balance document.
const balanceDocID = "balance"
