package fulfillment

import (
	"time"

	"github.com/factoryops/backend/internal/domain/sequence"
	"github.com/factoryops/backend/internal/domain/shared"
)

// Order statuses the engine knows about. Orders are created and listed by the
// surrounding order-management surface; the engine only stamps them.
const (
	OrderStatusPending   = "pending"
	OrderStatusDelivered = "delivered"
	OrderStatusCompleted = "completed"
)

// Order is the order/voucher record a fulfillment stamps its outcome onto.
// The engine owns two mutations only: the target status applied on commit and
// the document number assignment (sequence or administrative override).
type Order struct {
	shared.BaseAggregateRoot
	Reference      string                  `gorm:"type:varchar(64);not null;index"`
	Status         string                  `gorm:"type:varchar(32);not null;default:'pending'"`
	DocumentType   sequence.DocumentType   `gorm:"type:varchar(40)"`
	DocumentNumber sequence.DocumentNumber `gorm:"type:varchar(64)"`
	// NumberOverridden marks document numbers attached through the
	// administrative override path rather than minted by the counter.
	NumberOverridden bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "fulfillment_orders"
}

// NewOrder creates a new order in pending status
func NewOrder(reference string, documentType sequence.DocumentType) (*Order, error) {
	if reference == "" {
		return nil, shared.NewValidationError("order reference cannot be empty")
	}
	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Reference:         reference,
		Status:            OrderStatusPending,
		DocumentType:      documentType,
	}, nil
}

// ApplyStatus applies the fulfillment's target status. The transition is
// first-observed: the engine does not deduplicate repeated fulfillments of the
// same order, the caller must not submit the same physical event twice.
func (o *Order) ApplyStatus(target string) error {
	if target == "" {
		return shared.NewValidationError("target status cannot be empty")
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// AssignDocumentNumber attaches a counter-minted document number
func (o *Order) AssignDocumentNumber(number sequence.DocumentNumber) {
	o.DocumentNumber = number
	o.NumberOverridden = false
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// OverrideDocumentNumber attaches a caller-supplied document number without
// consuming a sequence value. Collisions are permitted by design.
func (o *Order) OverrideDocumentNumber(number sequence.DocumentNumber) error {
	if number.IsZero() {
		return shared.NewValidationError("override document number cannot be empty")
	}
	o.DocumentNumber = number
	o.NumberOverridden = true
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}
