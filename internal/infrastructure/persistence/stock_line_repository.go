package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/factoryops/backend/internal/domain/stock"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockLineRepository implements StockLineRepository using GORM
type GormStockLineRepository struct {
	db *gorm.DB
}

// NewGormStockLineRepository creates a new GormStockLineRepository
func NewGormStockLineRepository(db *gorm.DB) *GormStockLineRepository {
	return &GormStockLineRepository{db: db}
}

// FindByLocationAndVariant finds the stock line for a location-variant pair
func (r *GormStockLineRepository) FindByLocationAndVariant(ctx context.Context, locationCode string, variantID uuid.UUID) (*stock.StockLine, error) {
	var line stock.StockLine
	if err := r.db.WithContext(ctx).
		Where("location_code = ? AND variant_id = ?", locationCode, variantID).
		First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// FindForUpdate finds the stock line and acquires a row-level write lock.
// Must run inside a transaction; outside one the lock releases immediately.
func (r *GormStockLineRepository) FindForUpdate(ctx context.Context, locationCode string, variantID uuid.UUID) (*stock.StockLine, error) {
	var line stock.StockLine
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("location_code = ? AND variant_id = ?", locationCode, variantID).
		First(&line).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// FindByLocation lists stock lines at a location
func (r *GormStockLineRepository) FindByLocation(ctx context.Context, locationCode string, filter shared.Filter) ([]stock.StockLine, error) {
	var lines []stock.StockLine
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&stock.StockLine{}).
			Where("location_code = ?", locationCode),
		filter,
	)

	if err := query.Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// FindBelowThreshold lists lines at or below their own reorder threshold
func (r *GormStockLineRepository) FindBelowThreshold(ctx context.Context, filter shared.Filter) ([]stock.StockLine, error) {
	var lines []stock.StockLine
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&stock.StockLine{}).
			Where("quantity <= reorder_threshold"),
		filter,
	)

	if err := query.Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// ExistsByLocationAndVariant checks whether a line exists for the pair
func (r *GormStockLineRepository) ExistsByLocationAndVariant(ctx context.Context, locationCode string, variantID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&stock.StockLine{}).
		Where("location_code = ? AND variant_id = ?", locationCode, variantID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a stock line
func (r *GormStockLineRepository) Save(ctx context.Context, line *stock.StockLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

// applyFilter applies filter options to the query
func (r *GormStockLineRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormStockLineRepository implements StockLineRepository
var _ stock.StockLineRepository = (*GormStockLineRepository)(nil)
