// Package mongo implements the ledger store on MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/reelgate/ledger"
	"github.com/reelgate/ledger/catalog"
	"github.com/reelgate/ledger/receipt"
	ledgerstore "github.com/reelgate/ledger/store"
	"github.com/reelgate/ledger/subscriber"
	"github.com/reelgate/ledger/types"
)

// Collection name constants.
const (
	colSubscribers = "ledger_subscribers"
	colMovies      = "ledger_movies"
	colPayments    = "ledger_payments"
	colWithdrawals = "ledger_withdrawals"
	colBalance     = "ledger_balance"
)

// compile-time interface check
var _ ledgerstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// New wraps an existing client and database name.
func New(client *mongo.Client, database string) *Store {
	return &Store{
		client: client,
		db:     client.Database(database),
	}
}

// Open connects to MongoDB with the given URI and database name.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("ledger/mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ledger/mongo: ping: %w", err)
	}
	return New(client, database), nil
}

// Migrate creates indexes and seeds the singleton balance document.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		colSubscribers: {
			{Keys: bson.D{{Key: "expires_at", Value: 1}}},
		},
		colMovies: {
			{Keys: bson.D{{Key: "position", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		colPayments: {
			{Keys: bson.D{{Key: "identity", Value: 1}, {Key: "paid_at", Value: 1}}},
		},
		colWithdrawals: {
			{Keys: bson.D{{Key: "withdrawn_at", Value: 1}}},
		},
	}

	for col, models := range indexes {
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ledger/mongo: migrate %s indexes: %w", col, err)
		}
	}

	seed := bson.M{
		"$setOnInsert": balanceModel{
			ID:        balanceDocID,
			AmountWei: 0,
			Currency:  "eth",
			UpdatedAt: now(),
		},
	}
	_, err := s.db.Collection(colBalance).UpdateOne(ctx,
		bson.M{"_id": balanceDocID}, seed, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("ledger/mongo: seed balance: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects from the database.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

// ==================== Subscriber store ====================

func (s *Store) GetSubscriber(ctx context.Context, identity string) (*subscriber.Record, error) {
	var m subscriberModel
	err := s.db.Collection(colSubscribers).FindOne(ctx, bson.M{"_id": identity}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, ledger.ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("ledger/mongo: get subscriber: %w", err)
	}
	return fromSubscriberModel(&m)
}

func (s *Store) PutSubscriber(ctx context.Context, r *subscriber.Record) error {
	m := toSubscriberModel(r)
	_, err := s.db.Collection(colSubscribers).ReplaceOne(ctx,
		bson.M{"_id": m.Identity}, m, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("ledger/mongo: put subscriber: %w", err)
	}
	return nil
}

func (s *Store) ListSubscribers(ctx context.Context, opts subscriber.ListOpts) ([]*subscriber.Record, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if opts.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts = findOpts.SetSkip(int64(opts.Offset))
	}

	cur, err := s.db.Collection(colSubscribers).Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("ledger/mongo: list subscribers: %w", err)
	}
	var models []subscriberModel
	if err := cur.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("ledger/mongo: list subscribers: %w", err)
	}

	result := make([]*subscriber.Record, len(models))
	for i := range models {
		r, err := fromSubscriberModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = r
	}
	return result, nil
}

// ==================== Catalogue store ====================

func (s *Store) AppendMovie(ctx context.Context, m *catalog.Movie) error {
	count, err := s.db.Collection(colMovies).CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("ledger/mongo: append movie: %w", err)
	}
	m.Position = int(count) + 1

	if _, err := s.db.Collection(colMovies).InsertOne(ctx, toMovieModel(m)); err != nil {
		return fmt.Errorf("ledger/mongo: append movie: %w", err)
	}
	return nil
}

func (s *Store) ListMovies(ctx context.Context, opts catalog.ListOpts) ([]*catalog.Movie, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	if opts.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts = findOpts.SetSkip(int64(opts.Offset))
	}

	cur, err := s.db.Collection(colMovies).Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("ledger/mongo: list movies: %w", err)
	}
	var models []movieModel
	if err := cur.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("ledger/mongo: list movies: %w", err)
	}

	result := make([]*catalog.Movie, len(models))
	for i := range models {
		movie, err := fromMovieModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = movie
	}
	return result, nil
}

// ==================== Receipt store ====================

func (s *Store) RecordPayment(ctx context.Context, p *receipt.Payment) error {
	if _, err := s.db.Collection(colPayments).InsertOne(ctx, toPaymentModel(p)); err != nil {
		return fmt.Errorf("ledger/mongo: record payment: %w", err)
	}
	return nil
}

func (s *Store) ListPayments(ctx context.Context, opts receipt.ListOpts) ([]*receipt.Payment, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "paid_at", Value: 1}, {Key: "_id", Value: 1}})
	if opts.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts = findOpts.SetSkip(int64(opts.Offset))
	}

	cur, err := s.db.Collection(colPayments).Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("ledger/mongo: list payments: %w", err)
	}
	var models []paymentModel
	if err := cur.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("ledger/mongo: list payments: %w", err)
	}

	result := make([]*receipt.Payment, len(models))
	for i := range models {
		p, err := fromPaymentModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

func (s *Store) RecordWithdrawal(ctx context.Context, w *receipt.Withdrawal) error {
	if _, err := s.db.Collection(colWithdrawals).InsertOne(ctx, toWithdrawalModel(w)); err != nil {
		return fmt.Errorf("ledger/mongo: record withdrawal: %w", err)
	}
	return nil
}

func (s *Store) ListWithdrawals(ctx context.Context, opts receipt.ListOpts) ([]*receipt.Withdrawal, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "withdrawn_at", Value: 1}, {Key: "_id", Value: 1}})
	if opts.Limit > 0 {
		findOpts = findOpts.SetLimit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		findOpts = findOpts.SetSkip(int64(opts.Offset))
	}

	cur, err := s.db.Collection(colWithdrawals).Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("ledger/mongo: list withdrawals: %w", err)
	}
	var models []withdrawalModel
	if err := cur.All(ctx, &models); err != nil {
		return nil, fmt.Errorf("ledger/mongo: list withdrawals: %w", err)
	}

	result := make([]*receipt.Withdrawal, len(models))
	for i := range models {
		w, err := fromWithdrawalModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = w
	}
	return result, nil
}

// ==================== Balance store ====================

func (s *Store) Balance(ctx context.Context) (types.Money, error) {
	var m balanceModel
	err := s.db.Collection(colBalance).FindOne(ctx, bson.M{"_id": balanceDocID}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return types.Wei(0), nil
		}
		return types.Money{}, fmt.Errorf("ledger/mongo: balance: %w", err)
	}
	return types.Money{Amount: m.AmountWei, Currency: m.Currency}, nil
}

func (s *Store) Deposit(ctx context.Context, amount types.Money) error {
	update := bson.M{
		"$inc": bson.M{"amount_wei": amount.Amount},
		"$set": bson.M{"updated_at": now()},
		"$setOnInsert": bson.M{
			"currency": amount.Currency,
		},
	}
	_, err := s.db.Collection(colBalance).UpdateOne(ctx,
		bson.M{"_id": balanceDocID}, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("ledger/mongo: deposit: %w", err)
	}
	return nil
}

func (s *Store) ResetBalance(ctx context.Context) (types.Money, error) {
	var prior balanceModel
	err := s.db.Collection(colBalance).FindOneAndUpdate(ctx,
		bson.M{"_id": balanceDocID},
		bson.M{"$set": bson.M{"amount_wei": int64(0), "updated_at": now()}},
	).Decode(&prior)
	if err != nil {
		if isNoDocuments(err) {
			return types.Wei(0), nil
		}
		return types.Money{}, fmt.Errorf("ledger/mongo: reset balance: %w", err)
	}
	return types.Money{Amount: prior.AmountWei, Currency: prior.Currency}, nil
}

// Helpers

func now() time.Time { return time.Now().UTC() }

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
