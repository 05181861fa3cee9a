package fulfillment

import (
	"github.com/factoryops/backend/internal/domain/sequence"
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeRecord = "FulfillmentRecord"

// Event type constants
const (
	EventTypeCompleted = "FulfillmentCompleted"
)

// CategoryCompleted is the outbound notification category for committed fulfillments
const CategoryCompleted = "fulfillment-completed"

// CompletedEvent is dispatched to the Notification Dispatcher exactly once per
// committed fulfillment, after the transaction commits. Rolled back attempts
// dispatch nothing.
type CompletedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID               `json:"order_id"`
	DocumentNumber sequence.DocumentNumber `json:"document_number,omitempty"`
}

// NewCompletedEvent creates a new CompletedEvent
func NewCompletedEvent(record *Record) *CompletedEvent {
	return &CompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompleted, CategoryCompleted, AggregateTypeRecord, record.ID),
		OrderID:         record.OrderID,
		DocumentNumber:  record.DocumentNumber,
	}
}

// EventType returns the event type name
func (e *CompletedEvent) EventType() string {
	return EventTypeCompleted
}
