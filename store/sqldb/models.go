package sqldb

import (
	"time"

	"github.com/reelgate/ledger/catalog"
	"github.com/reelgate/ledger/id"
	"github.com/reelgate/ledger/plan"
	"github.com/reelgate/ledger/receipt"
	"github.com/reelgate/ledger/subscriber"
	"github.com/reelgate/ledger/types"
)

// subscriberModel mirrors subscriber.Record for relational storage.
type subscriberModel struct {
	Identity  string    `gorm:"primaryKey;type:varchar(128)"`
	Plan      string    `gorm:"type:varchar(16);not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (subscriberModel) TableName() string { return "ledger_subscribers" }

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

// movieModel mirrors catalog.Movie. Position carries the append order.
type movieModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(64)"`
	Plan      string    `gorm:"type:varchar(16);not null"`
	Title     string    `gorm:"type:text;not null"`
	Position  int       `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (movieModel) TableName() string { return "ledger_movies" }

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
	ID        string    `gorm:"primaryKey;type:varchar(64)"`
	Identity  string    `gorm:"type:varchar(128);not null;index"`
	Plan      string    `gorm:"type:varchar(16);not null"`
	AmountWei int64     `gorm:"not null"`
	Currency  string    `gorm:"type:varchar(8);not null"`
	PaidAt    time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (paymentModel) TableName() string { return "ledger_payments" }

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
	ID          string    `gorm:"primaryKey;type:varchar(64)"`
	Owner       string    `gorm:"type:varchar(128);not null"`
	AmountWei   int64     `gorm:"not null"`
	Currency    string    `gorm:"type:varchar(8);not null"`
	WithdrawnAt time.Time `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (withdrawalModel) TableName() string { return "ledger_withdrawals" }

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

// balanceModel is the single-row held balance counter.
type balanceModel struct {
	ID        uint      `gorm:"primaryKey"`
	AmountWei int64     `gorm:"not null"`
	Currency  string    `gorm:"type:varchar(8);not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (balanceModel) TableName() string { return "ledger_balance" }

// balanceRowID is the fixed primary key of the singleton balance row.
const balanceRowID = 1
