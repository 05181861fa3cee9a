package sequence

import (
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeCounter = "SequenceCounter"

// Event type constants
const (
	EventTypeCounterAdvanced  = "SequenceCounterAdvanced"
	EventTypeCounterReset     = "SequenceCounterReset"
	EventTypeNumberOverridden = "DocumentNumberOverridden"
)

// CounterAdvancedEvent is raised when a counter mints a new value
type CounterAdvancedEvent struct {
	shared.BaseDomainEvent
	DocumentType DocumentType `json:"document_type"`
	Scope        string       `json:"scope"`
	Value        int64        `json:"value"`
}

// NewCounterAdvancedEvent creates a new CounterAdvancedEvent
func NewCounterAdvancedEvent(c *Counter) *CounterAdvancedEvent {
	return &CounterAdvancedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCounterAdvanced, "", AggregateTypeCounter, c.ID),
		DocumentType:    c.DocumentType,
		Scope:           c.Scope,
		Value:           c.Value,
	}
}

// EventType returns the event type name
func (e *CounterAdvancedEvent) EventType() string {
	return EventTypeCounterAdvanced
}

// CounterResetEvent is raised when a counter is administratively reset
type CounterResetEvent struct {
	shared.BaseDomainEvent
	DocumentType  DocumentType `json:"document_type"`
	Scope         string       `json:"scope"`
	PreviousValue int64        `json:"previous_value"`
	NewValue      int64        `json:"new_value"`
}

// NewCounterResetEvent creates a new CounterResetEvent
func NewCounterResetEvent(c *Counter, previous int64) *CounterResetEvent {
	return &CounterResetEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCounterReset, "", AggregateTypeCounter, c.ID),
		DocumentType:    c.DocumentType,
		Scope:           c.Scope,
		PreviousValue:   previous,
		NewValue:        c.Value,
	}
}

// EventType returns the event type name
func (e *CounterResetEvent) EventType() string {
	return EventTypeCounterReset
}

// NumberOverriddenEvent is raised when an explicit document number is attached
// to a record through the administrative override path. Overrides are a
// documented escape hatch, logged for audit, never blocked on collision.
type NumberOverriddenEvent struct {
	shared.BaseDomainEvent
	DocumentType DocumentType   `json:"document_type"`
	RecordID     uuid.UUID      `json:"record_id"`
	Number       DocumentNumber `json:"number"`
	Actor        string         `json:"actor"`
}

// NewNumberOverriddenEvent creates a new NumberOverriddenEvent
func NewNumberOverriddenEvent(documentType DocumentType, recordID uuid.UUID, number DocumentNumber, actor string) *NumberOverriddenEvent {
	return &NumberOverriddenEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeNumberOverridden, "", AggregateTypeCounter, recordID),
		DocumentType:    documentType,
		RecordID:        recordID,
		Number:          number,
		Actor:           actor,
	}
}

// EventType returns the event type name
func (e *NumberOverriddenEvent) EventType() string {
	return EventTypeNumberOverridden
}
