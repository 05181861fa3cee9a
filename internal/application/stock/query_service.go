package stock

import (
	"context"

	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/factoryops/backend/internal/domain/stock"
	"github.com/google/uuid"
)

// QueryService provides read-only access to the stock ledger for the API
// surface. It never mutates quantities; all mutations go through the
// fulfillment coordinator's transaction.
type QueryService struct {
	stockRepo stock.StockLineRepository
}

// NewQueryService creates a new QueryService
func NewQueryService(stockRepo stock.StockLineRepository) *QueryService {
	return &QueryService{stockRepo: stockRepo}
}

// GetLine returns the stock line for a location-variant pair
func (s *QueryService) GetLine(ctx context.Context, locationCode string, variantID uuid.UUID) (*stock.StockLine, error) {
	return s.stockRepo.FindByLocationAndVariant(ctx, locationCode, variantID)
}

// ListByLocation lists stock lines at a location
func (s *QueryService) ListByLocation(ctx context.Context, locationCode string, filter shared.Filter) ([]stock.StockLine, error) {
	return s.stockRepo.FindByLocation(ctx, locationCode, filter)
}

// ListBelowThreshold lists lines at or below their reorder threshold
func (s *QueryService) ListBelowThreshold(ctx context.Context, filter shared.Filter) ([]stock.StockLine, error) {
	return s.stockRepo.FindBelowThreshold(ctx, filter)
}
