package persistence

import (
	"context"

	appful "github.com/factoryops/backend/internal/application/fulfillment"
	"github.com/factoryops/backend/internal/domain/fulfillment"
	"github.com/factoryops/backend/internal/domain/sequence"
	"github.com/factoryops/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db                *gorm.DB
	counterMaxRetries int
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db, counterMaxRetries: defaultCounterRetries}
}

// WithCounterRetries sets the retry budget handed to counter repositories
func (s *GormTransactionScope) WithCounterRetries(n int) *GormTransactionScope {
	if n > 0 {
		s.counterMaxRetries = n
	}
	return s
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appful.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx, counterMaxRetries: s.counterMaxRetries}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx                *gorm.DB
	counterMaxRetries int
}

// StockLines returns the stock line repository scoped to the current transaction.
func (r *gormTransactionalRepositories) StockLines() stock.StockLineRepository {
	return NewGormStockLineRepository(r.tx)
}

// Counters returns the counter repository scoped to the current transaction.
// The repository's inner db.Transaction nests via savepoint, so a rollback of
// the enclosing fulfillment reverts any consumed value.
func (r *gormTransactionalRepositories) Counters() sequence.CounterRepository {
	return NewGormCounterRepository(r.tx).WithMaxRetries(r.counterMaxRetries)
}

// Orders returns the order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Orders() fulfillment.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Records returns the record repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Records() fulfillment.RecordRepository {
	return NewGormRecordRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appful.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appful.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
