package stock

import (
	"time"

	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CentralLocation is the location code of the central warehouse, the source
// side of every fulfillment transfer.
const CentralLocation = "CENTRAL"

// LineMetadata carries the display attributes copied onto a destination line
// when it is created on first allocation.
type LineMetadata struct {
	DisplayName string
	UnitPrice   decimal.Decimal
	Attributes  string
}

// StockLine is the aggregate root for the quantity of one variant at one
// location. The composite identifier is LocationCode + VariantID. Quantities
// are whole units; the ledger intentionally allows the quantity to go negative
// on outbound transfers — no floor is enforced at this layer.
type StockLine struct {
	shared.BaseAggregateRoot
	LocationCode     string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_stock_line_location_variant,priority:1"`
	VariantID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_line_location_variant,priority:2"`
	Quantity         int64           `gorm:"not null;default:0"`
	ReorderThreshold int64           `gorm:"not null;default:0"`
	DisplayName      string          `gorm:"type:varchar(255)"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Attributes       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StockLine) TableName() string {
	return "stock_lines"
}

// NewStockLine creates a new stock line for a location-variant combination
func NewStockLine(locationCode string, variantID uuid.UUID, metadata LineMetadata) (*StockLine, error) {
	if locationCode == "" {
		return nil, shared.NewValidationError("location code cannot be empty")
	}
	if variantID == uuid.Nil {
		return nil, shared.NewValidationError("variant ID cannot be empty")
	}
	return &StockLine{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		LocationCode:      locationCode,
		VariantID:         variantID,
		Quantity:          0,
		DisplayName:       metadata.DisplayName,
		UnitPrice:         metadata.UnitPrice,
		Attributes:        metadata.Attributes,
	}, nil
}

// TransferOut decrements the quantity and returns the new quantity.
// The resulting quantity may go negative; callers must run this inside an
// active fulfillment transaction.
func (l *StockLine) TransferOut(quantity int64) (int64, error) {
	if quantity <= 0 {
		return l.Quantity, shared.NewValidationError("transfer quantity must be positive")
	}
	l.Quantity -= quantity
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	l.AddDomainEvent(NewStockTransferredOutEvent(l, quantity))
	return l.Quantity, nil
}

// TransferIn increments the quantity and returns the new quantity.
// Metadata is applied only while the line still has none, which covers the
// create-on-first-allocation path.
func (l *StockLine) TransferIn(quantity int64, metadata LineMetadata) (int64, error) {
	if quantity <= 0 {
		return l.Quantity, shared.NewValidationError("transfer quantity must be positive")
	}
	if l.DisplayName == "" {
		l.DisplayName = metadata.DisplayName
		l.UnitPrice = metadata.UnitPrice
		l.Attributes = metadata.Attributes
	}
	l.Quantity += quantity
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
	l.AddDomainEvent(NewStockTransferredInEvent(l, quantity))
	return l.Quantity, nil
}

// Metadata returns the line's display attributes
func (l *StockLine) Metadata() LineMetadata {
	return LineMetadata{
		DisplayName: l.DisplayName,
		UnitPrice:   l.UnitPrice,
		Attributes:  l.Attributes,
	}
}

// CheckLowStock evaluates the post-transfer quantity against the threshold.
// Pure and read-only: returns a descriptor when quantity <= threshold
// (equality included, arbitrarily negative quantities included), nil otherwise.
// It mutates nothing and dispatches nothing; the caller owns delivery.
func (l *StockLine) CheckLowStock(threshold int64) *LowStockDetectedEvent {
	if l.Quantity > threshold {
		return nil
	}
	return NewLowStockDetectedEvent(l, threshold)
}

// IsBelowThreshold reports whether the line sits at or below its own reorder threshold
func (l *StockLine) IsBelowThreshold() bool {
	return l.Quantity <= l.ReorderThreshold
}
