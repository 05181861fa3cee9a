package fulfillment

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/factoryops/backend/internal/domain/sequence"
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/factoryops/backend/internal/domain/stock"
	"github.com/google/uuid"
)

// State of a fulfillment attempt. Received and InTransaction are transient;
// Committed and RolledBack are terminal.
type State string

// Fulfillment states
const (
	StateReceived      State = "received"
	StateInTransaction State = "in_transaction"
	StateCommitted     State = "committed"
	StateRolledBack    State = "rolled_back"
)

// IsTerminal reports whether the state admits no further transitions
func (s State) IsTerminal() bool {
	return s == StateCommitted || s == StateRolledBack
}

// Record is the audit trail of one fulfillment attempt. It is the explicit
// state machine over a single request: Received -> InTransaction ->
// {Committed, RolledBack}. Once terminal, the record is immutable; a failed
// attempt never leaves partial ledger effects behind it.
type Record struct {
	shared.BaseAggregateRoot
	OrderID        uuid.UUID               `gorm:"type:uuid;not null;index"`
	State          State                   `gorm:"type:varchar(20);not null"`
	DocumentNumber sequence.DocumentNumber `gorm:"type:varchar(64)"`
	// LowStockEvents holds the serialized low-stock descriptors produced by
	// the attempt; empty for rolled back attempts.
	LowStockEvents string `gorm:"type:text"`
	ErrorCode      string `gorm:"type:varchar(64)"`
	CompletedAt    *time.Time
}

// TableName returns the table name for GORM
func (Record) TableName() string {
	return "fulfillment_records"
}

// NewRecord creates a record in the Received state for an incoming request
func NewRecord(orderID uuid.UUID) *Record {
	return &Record{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		State:             StateReceived,
	}
}

// BeginTransaction transitions Received -> InTransaction
func (r *Record) BeginTransaction() error {
	if r.State != StateReceived {
		return shared.ErrInvalidState
	}
	r.State = StateInTransaction
	r.UpdatedAt = time.Now()
	return nil
}

// Commit transitions InTransaction -> Committed, capturing the assigned
// document number and the low-stock descriptors produced by the transfer.
func (r *Record) Commit(number sequence.DocumentNumber, lowStock []*stock.LowStockDetectedEvent) error {
	if r.State != StateInTransaction {
		return shared.ErrInvalidState
	}
	if len(lowStock) > 0 {
		payload, err := json.Marshal(lowStock)
		if err != nil {
			return err
		}
		r.LowStockEvents = string(payload)
	}
	now := time.Now()
	r.State = StateCommitted
	r.DocumentNumber = number
	r.CompletedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()
	r.AddDomainEvent(NewCompletedEvent(r))
	return nil
}

// Rollback transitions InTransaction -> RolledBack with the originating error.
// All ledger mutations, the order status, and any consumed sequence value are
// reverted by the enclosing store transaction; the record only documents it.
func (r *Record) Rollback(cause error) error {
	if r.State != StateInTransaction {
		return shared.ErrInvalidState
	}
	var domainErr *shared.DomainError
	if errors.As(cause, &domainErr) {
		r.ErrorCode = domainErr.Code
	} else {
		r.ErrorCode = shared.ErrStorageUnavailable.Code
	}
	now := time.Now()
	r.State = StateRolledBack
	r.CompletedAt = &now
	r.UpdatedAt = now
	r.IncrementVersion()
	return nil
}

// Committed reports whether the attempt committed
func (r *Record) Committed() bool {
	return r.State == StateCommitted
}
