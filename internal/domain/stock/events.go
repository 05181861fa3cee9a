package stock

import (
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeStockLine = "StockLine"

// Event type constants
const (
	EventTypeStockTransferredOut = "StockTransferredOut"
	EventTypeStockTransferredIn  = "StockTransferredIn"
	EventTypeLowStockDetected    = "LowStockDetected"
)

// CategoryLowStock is the outbound notification category for low-stock alerts
const CategoryLowStock = "low-stock"

// StockTransferredOutEvent is raised when quantity leaves a location
type StockTransferredOutEvent struct {
	shared.BaseDomainEvent
	LocationCode string    `json:"location_code"`
	VariantID    uuid.UUID `json:"variant_id"`
	Quantity     int64     `json:"quantity"`
	NewQuantity  int64     `json:"new_quantity"`
}

// NewStockTransferredOutEvent creates a new StockTransferredOutEvent
func NewStockTransferredOutEvent(line *StockLine, quantity int64) *StockTransferredOutEvent {
	return &StockTransferredOutEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockTransferredOut, "", AggregateTypeStockLine, line.ID),
		LocationCode:    line.LocationCode,
		VariantID:       line.VariantID,
		Quantity:        quantity,
		NewQuantity:     line.Quantity,
	}
}

// EventType returns the event type name
func (e *StockTransferredOutEvent) EventType() string {
	return EventTypeStockTransferredOut
}

// StockTransferredInEvent is raised when quantity arrives at a location
type StockTransferredInEvent struct {
	shared.BaseDomainEvent
	LocationCode string    `json:"location_code"`
	VariantID    uuid.UUID `json:"variant_id"`
	Quantity     int64     `json:"quantity"`
	NewQuantity  int64     `json:"new_quantity"`
}

// NewStockTransferredInEvent creates a new StockTransferredInEvent
func NewStockTransferredInEvent(line *StockLine, quantity int64) *StockTransferredInEvent {
	return &StockTransferredInEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockTransferredIn, "", AggregateTypeStockLine, line.ID),
		LocationCode:    line.LocationCode,
		VariantID:       line.VariantID,
		Quantity:        quantity,
		NewQuantity:     line.Quantity,
	}
}

// EventType returns the event type name
func (e *StockTransferredInEvent) EventType() string {
	return EventTypeStockTransferredIn
}

// LowStockDetectedEvent describes a post-transfer quantity at or below its
// threshold. It is handed back to the Fulfillment Coordinator, which dispatches
// it to the Notification Dispatcher only after the transaction commits.
type LowStockDetectedEvent struct {
	shared.BaseDomainEvent
	VariantID           uuid.UUID `json:"variant_id"`
	CurrentQuantity     int64     `json:"current_quantity"`
	Threshold           int64     `json:"threshold"`
	LocationDisplayName string    `json:"location_display_name"`
}

// NewLowStockDetectedEvent creates a new LowStockDetectedEvent
func NewLowStockDetectedEvent(line *StockLine, threshold int64) *LowStockDetectedEvent {
	return &LowStockDetectedEvent{
		BaseDomainEvent:     shared.NewBaseDomainEvent(EventTypeLowStockDetected, CategoryLowStock, AggregateTypeStockLine, line.ID),
		VariantID:           line.VariantID,
		CurrentQuantity:     line.Quantity,
		Threshold:           threshold,
		LocationDisplayName: line.LocationCode,
	}
}

// EventType returns the event type name
func (e *LowStockDetectedEvent) EventType() string {
	return EventTypeLowStockDetected
}
