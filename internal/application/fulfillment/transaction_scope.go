package fulfillment

import (
	"context"

	"github.com/factoryops/backend/internal/domain/fulfillment"
	"github.com/factoryops/backend/internal/domain/sequence"
	"github.com/factoryops/backend/internal/domain/stock"
)

// TransactionScope provides transactional access to the repositories a
// fulfillment touches. When a function is executed within a transaction scope,
// all repository operations are part of the same database transaction and are
// committed or rolled back atomically — including the sequence increment, so a
// rolled back transfer never consumes a document number.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all fulfillment repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// StockLines returns the stock line repository scoped to the current transaction
	StockLines() stock.StockLineRepository
	// Counters returns the sequence counter repository scoped to the current transaction
	Counters() sequence.CounterRepository
	// Orders returns the order repository scoped to the current transaction
	Orders() fulfillment.OrderRepository
	// Records returns the fulfillment record repository scoped to the current transaction
	Records() fulfillment.RecordRepository
}

// NoOpTransactionScope is a transaction scope that doesn't use real
// transactions. Useful for tests and for wiring without transaction support.
type NoOpTransactionScope struct {
	stockRepo   stock.StockLineRepository
	counterRepo sequence.CounterRepository
	orderRepo   fulfillment.OrderRepository
	recordRepo  fulfillment.RecordRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	stockRepo stock.StockLineRepository,
	counterRepo sequence.CounterRepository,
	orderRepo fulfillment.OrderRepository,
	recordRepo fulfillment.RecordRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stockRepo:   stockRepo,
		counterRepo: counterRepo,
		orderRepo:   orderRepo,
		recordRepo:  recordRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockLines returns the stock line repository
func (s *NoOpTransactionScope) StockLines() stock.StockLineRepository {
	return s.stockRepo
}

// Counters returns the sequence counter repository
func (s *NoOpTransactionScope) Counters() sequence.CounterRepository {
	return s.counterRepo
}

// Orders returns the order repository
func (s *NoOpTransactionScope) Orders() fulfillment.OrderRepository {
	return s.orderRepo
}

// Records returns the fulfillment record repository
func (s *NoOpTransactionScope) Records() fulfillment.RecordRepository {
	return s.recordRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
