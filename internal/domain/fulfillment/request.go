package fulfillment

import (
	"github.com/factoryops/backend/internal/domain/sequence"
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/factoryops/backend/internal/domain/stock"
	"github.com/google/uuid"
)

// TransferLine is one (variant, quantity) movement from the central warehouse
// to the request's destination. Lines are applied in the order given.
type TransferLine struct {
	VariantID uuid.UUID
	Quantity  int64
	// Threshold is the low-stock threshold evaluated against the central
	// line's post-transfer quantity. Nil means use the line's own
	// reorder threshold.
	Threshold *int64
}

// Request describes one fulfillment: an order reference, an ordered list of
// transfer lines, the destination, and the status to apply on success.
// DocumentType being set means a document number must be minted inside the
// fulfillment transaction; scope selects global or per-destination numbering.
type Request struct {
	OrderID         uuid.UUID
	DocumentType    sequence.DocumentType
	Scope           string
	DestinationCode string
	TargetStatus    string
	Lines           []TransferLine
	CheckLowStock   bool
}

// NeedsDocumentNumber reports whether the request consumes a sequence value
func (r *Request) NeedsDocumentNumber() bool {
	return r.DocumentType != ""
}

// Validate rejects malformed requests before any transaction opens.
// A failed validation has no side effects.
func (r *Request) Validate() error {
	if r.OrderID == uuid.Nil {
		return shared.NewValidationError("order ID is required")
	}
	if r.DestinationCode == "" {
		return shared.NewValidationError("destination code is required")
	}
	if r.DestinationCode == stock.CentralLocation {
		return shared.NewValidationError("destination cannot be the central warehouse")
	}
	if r.TargetStatus == "" {
		return shared.NewValidationError("target status is required")
	}
	if len(r.Lines) == 0 {
		return shared.NewValidationError("at least one transfer line is required")
	}
	if r.DocumentType != "" && !r.DocumentType.IsValid() {
		return shared.NewValidationError("unknown document type")
	}
	for _, line := range r.Lines {
		if line.VariantID == uuid.Nil {
			return shared.NewValidationError("transfer line variant ID is required")
		}
		if line.Quantity <= 0 {
			return shared.NewValidationError("transfer line quantity must be positive")
		}
	}
	return nil
}
