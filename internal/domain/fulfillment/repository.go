package fulfillment

import (
	"context"

	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order/voucher persistence
type OrderRepository interface {
	// FindByID finds an order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindForUpdate finds the order and acquires a write lock on its row.
	// Must be called inside a transaction.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)

	// Save creates or updates an order
	Save(ctx context.Context, order *Order) error
}

// RecordRepository defines the interface for fulfillment record persistence.
// Records are append-only: they are created once per attempt at a terminal
// state and never mutated afterward.
type RecordRepository interface {
	// FindByID finds a record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)

	// FindByOrder lists records for an order, newest first
	FindByOrder(ctx context.Context, orderID uuid.UUID, filter shared.Filter) ([]Record, error)

	// Save persists a record
	Save(ctx context.Context, record *Record) error
}
