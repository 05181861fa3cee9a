package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/factoryops/backend/internal/domain/fulfillment"
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRecordRepository implements RecordRepository using GORM.
// Records are append-only, so Save only ever inserts.
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// FindByID finds a record by its ID
func (r *GormRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.Record, error) {
	var record fulfillment.Record
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByOrder lists records for an order, newest first
func (r *GormRecordRepository) FindByOrder(ctx context.Context, orderID uuid.UUID, filter shared.Filter) ([]fulfillment.Record, error) {
	var records []fulfillment.Record
	query := r.db.WithContext(ctx).Model(&fulfillment.Record{}).
		Where("order_id = ?", orderID)

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

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save persists a record
func (r *GormRecordRepository) Save(ctx context.Context, record *fulfillment.Record) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Ensure GormRecordRepository implements RecordRepository
var _ fulfillment.RecordRepository = (*GormRecordRepository)(nil)
