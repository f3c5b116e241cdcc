// Package sqldb implements the ledger store on a relational database via
// GORM. SQLite (pure-Go driver) and PostgreSQL dialects are supported.
package sqldb

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/reelgate/ledger"
	"github.com/reelgate/ledger/catalog"
	"github.com/reelgate/ledger/receipt"
	ledgerstore "github.com/reelgate/ledger/store"
	"github.com/reelgate/ledger/subscriber"
	"github.com/reelgate/ledger/types"
)

// Dialect identifiers supported by this store.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// compile-time interface check
var _ ledgerstore.Store = (*Store)(nil)

// Store implements store.Store on a relational database.
type Store struct {
	db *gorm.DB
}

// New wraps an existing gorm connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects to the database for the given dialect and DSN.
// For SQLite the DSN is a file path (or "file::memory:?cache=shared");
// for PostgreSQL a standard connection string.
func Open(dialect, dsn string) (*Store, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var (
		db  *gorm.DB
		err error
	)
	switch dialect {
	case DialectSQLite:
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	case DialectPostgres, "":
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	default:
		return nil, fmt.Errorf("sqldb: unsupported dialect: %s", dialect)
	}
	if err != nil {
		return nil, fmt.Errorf("sqldb: open %s: %w", dialect, err)
	}

	return New(db), nil
}

// DB returns the underlying gorm database for direct access.
func (s *Store) DB() *gorm.DB { return s.db }

// Migrate creates the required tables and indexes, and seeds the
// singleton balance row.
func (s *Store) Migrate(ctx context.Context) error {
	conn := s.db.WithContext(ctx)
	if err := conn.AutoMigrate(
		&subscriberModel{},
		&movieModel{},
		&paymentModel{},
		&withdrawalModel{},
		&balanceModel{},
	); err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrMigrationFailed, err)
	}

	var count int64
	if err := conn.Model(&balanceModel{}).Where("id = ?", balanceRowID).Count(&count).Error; err != nil {
		return fmt.Errorf("%w: %v", ledger.ErrMigrationFailed, err)
	}
	if count == 0 {
		seed := &balanceModel{ID: balanceRowID, AmountWei: 0, Currency: "eth"}
		if err := conn.Create(seed).Error; err != nil {
			return fmt.Errorf("%w: %v", ledger.ErrMigrationFailed, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ==================== Subscriber store ====================

func (s *Store) GetSubscriber(ctx context.Context, identity string) (*subscriber.Record, error) {
	var m subscriberModel
	err := s.db.WithContext(ctx).First(&m, "identity = ?", identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("sqldb: get subscriber: %w", err)
	}
	return fromSubscriberModel(&m)
}

func (s *Store) PutSubscriber(ctx context.Context, r *subscriber.Record) error {
	m := toSubscriberModel(r)
	err := s.db.WithContext(ctx).Save(m).Error
	if err != nil {
		return fmt.Errorf("sqldb: put subscriber: %w", err)
	}
	return nil
}

func (s *Store) ListSubscribers(ctx context.Context, opts subscriber.ListOpts) ([]*subscriber.Record, error) {
	var models []subscriberModel
	q := s.db.WithContext(ctx).Order("identity")
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("sqldb: list subscribers: %w", err)
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
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&movieModel{}).Count(&count).Error; err != nil {
			return fmt.Errorf("sqldb: append movie: %w", err)
		}
		m.Position = int(count) + 1

		if err := tx.Create(toMovieModel(m)).Error; err != nil {
			return fmt.Errorf("sqldb: append movie: %w", err)
		}
		return nil
	})
}

func (s *Store) ListMovies(ctx context.Context, opts catalog.ListOpts) ([]*catalog.Movie, error) {
	var models []movieModel
	q := s.db.WithContext(ctx).Order("position")
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("sqldb: list movies: %w", err)
	}

	result := make([]*catalog.Movie, len(models))
	for i := range models {
		m, err := fromMovieModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = m
	}
	return result, nil
}

// ==================== Receipt store ====================

func (s *Store) RecordPayment(ctx context.Context, p *receipt.Payment) error {
	if err := s.db.WithContext(ctx).Create(toPaymentModel(p)).Error; err != nil {
		return fmt.Errorf("sqldb: record payment: %w", err)
	}
	return nil
}

func (s *Store) ListPayments(ctx context.Context, opts receipt.ListOpts) ([]*receipt.Payment, error) {
	var models []paymentModel
	q := s.db.WithContext(ctx).Order("paid_at, id")
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("sqldb: list payments: %w", err)
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
	if err := s.db.WithContext(ctx).Create(toWithdrawalModel(w)).Error; err != nil {
		return fmt.Errorf("sqldb: record withdrawal: %w", err)
	}
	return nil
}

func (s *Store) ListWithdrawals(ctx context.Context, opts receipt.ListOpts) ([]*receipt.Withdrawal, error) {
	var models []withdrawalModel
	q := s.db.WithContext(ctx).Order("withdrawn_at, id")
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("sqldb: list withdrawals: %w", err)
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
	err := s.db.WithContext(ctx).First(&m, "id = ?", balanceRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.Wei(0), nil
		}
		return types.Money{}, fmt.Errorf("sqldb: balance: %w", err)
	}
	return types.Money{Amount: m.AmountWei, Currency: m.Currency}, nil
}

func (s *Store) Deposit(ctx context.Context, amount types.Money) error {
	res := s.db.WithContext(ctx).
		Model(&balanceModel{}).
		Where("id = ? AND currency = ?", balanceRowID, amount.Currency).
		Update("amount_wei", gorm.Expr("amount_wei + ?", amount.Amount))
	if res.Error != nil {
		return fmt.Errorf("sqldb: deposit: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("sqldb: deposit: %w", ledger.ErrStoreNotReady)
	}
	return nil
}

func (s *Store) ResetBalance(ctx context.Context) (types.Money, error) {
	var cleared types.Money
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m balanceModel
		if err := tx.First(&m, "id = ?", balanceRowID).Error; err != nil {
			return fmt.Errorf("sqldb: reset balance: %w", err)
		}
		cleared = types.Money{Amount: m.AmountWei, Currency: m.Currency}

		if err := tx.Model(&balanceModel{}).
			Where("id = ?", balanceRowID).
			Update("amount_wei", 0).Error; err != nil {
			return fmt.Errorf("sqldb: reset balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return types.Money{}, err
	}
	return cleared, nil
}
