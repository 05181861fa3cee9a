package sequence

import (
	"time"

	"github.com/factoryops/backend/internal/domain/shared"
)

// DocumentType identifies the kind of physical paperwork a counter numbers.
type DocumentType string

// Supported document types
const (
	DocumentTypeRawMaterialReceipt   DocumentType = "raw_material_receipt"
	DocumentTypeFinishedGoodsReceipt DocumentType = "finished_goods_receipt"
)

// Prefix returns the short fixed code used in formatted document numbers
func (t DocumentType) Prefix() string {
	switch t {
	case DocumentTypeRawMaterialReceipt:
		return "RM"
	case DocumentTypeFinishedGoodsReceipt:
		return "FG"
	default:
		return ""
	}
}

// IsValid reports whether the document type is one of the supported types
func (t DocumentType) IsValid() bool {
	return t == DocumentTypeRawMaterialReceipt || t == DocumentTypeFinishedGoodsReceipt
}

// GlobalScope is the scope token for counters that are not bound to a destination.
const GlobalScope = ""

// Counter is the aggregate root for a single monotonic document-number counter.
// Exactly one counter row exists per (document type, scope); the row is created
// lazily on first use with an initial value of zero. The value never decreases
// except through an explicit administrative reset.
type Counter struct {
	shared.BaseAggregateRoot
	DocumentType DocumentType `gorm:"type:varchar(40);not null;uniqueIndex:idx_sequence_counter_type_scope,priority:1"`
	Scope        string       `gorm:"type:varchar(64);not null;default:'';uniqueIndex:idx_sequence_counter_type_scope,priority:2"`
	Value        int64        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Counter) TableName() string {
	return "sequence_counters"
}

// NewCounter creates a counter at zero for the given (document type, scope)
func NewCounter(documentType DocumentType, scope string) (*Counter, error) {
	if !documentType.IsValid() {
		return nil, shared.NewValidationError("unknown document type")
	}
	return &Counter{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DocumentType:      documentType,
		Scope:             scope,
		Value:             0,
	}, nil
}

// Advance increments the counter and returns the new value together with its
// formatted document number. The caller must hold the row serialized (row lock
// or equivalent) for the increment to be safe under concurrency.
func (c *Counter) Advance() (int64, DocumentNumber) {
	c.Value++
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	c.AddDomainEvent(NewCounterAdvancedEvent(c))
	return c.Value, FormatDocumentNumber(c.DocumentType, c.Scope, c.Value)
}

// ResetTo sets the counter to an explicit value, bypassing increment semantics.
// Administrative only; negative values are rejected.
func (c *Counter) ResetTo(value int64) error {
	if value < 0 {
		return shared.NewValidationError("counter value cannot be negative")
	}
	previous := c.Value
	c.Value = value
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	c.AddDomainEvent(NewCounterResetEvent(c, previous))
	return nil
}

// Formatted returns the document number for the counter's current value
func (c *Counter) Formatted() DocumentNumber {
	return FormatDocumentNumber(c.DocumentType, c.Scope, c.Value)
}
