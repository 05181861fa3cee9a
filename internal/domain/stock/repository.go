package stock

import (
	"context"

	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockLineRepository defines the interface for stock line persistence
type StockLineRepository interface {
	// FindByLocationAndVariant finds the stock line for a location-variant pair
	FindByLocationAndVariant(ctx context.Context, locationCode string, variantID uuid.UUID) (*StockLine, error)

	// FindForUpdate finds the stock line and acquires a write lock on its row.
	// Must be called inside a transaction; concurrent fulfillments touching the
	// same line serialize on this lock instead of silently overwriting.
	FindForUpdate(ctx context.Context, locationCode string, variantID uuid.UUID) (*StockLine, error)

	// FindByLocation lists stock lines at a location
	FindByLocation(ctx context.Context, locationCode string, filter shared.Filter) ([]StockLine, error)

	// FindBelowThreshold lists lines at or below their reorder threshold
	FindBelowThreshold(ctx context.Context, filter shared.Filter) ([]StockLine, error)

	// ExistsByLocationAndVariant checks whether a line exists for the pair
	ExistsByLocationAndVariant(ctx context.Context, locationCode string, variantID uuid.UUID) (bool, error)

	// Save creates or updates a stock line
	Save(ctx context.Context, line *StockLine) error
}
