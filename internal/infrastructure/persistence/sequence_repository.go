package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/factoryops/backend/internal/domain/sequence"
	"github.com/factoryops/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// defaultCounterRetries bounds the create-race retry loop when no explicit
// retry budget is configured.
const defaultCounterRetries = 3

// GormCounterRepository implements CounterRepository using GORM.
//
// IncrementAndGet serializes concurrent callers per (document type, scope) by
// taking a row-level write lock before the increment. The increment runs
// inside db.Transaction, so when the repository is handed a transaction
// handle GORM nests via savepoint and the consumed value reverts together
// with a rolled back enclosing transaction.
type GormCounterRepository struct {
	db         *gorm.DB
	maxRetries int
}

// NewGormCounterRepository creates a new GormCounterRepository
func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db, maxRetries: defaultCounterRetries}
}

// WithMaxRetries sets the retry budget for counter creation races
func (r *GormCounterRepository) WithMaxRetries(n int) *GormCounterRepository {
	if n > 0 {
		r.maxRetries = n
	}
	return r
}

// Peek returns the current counter value without mutating it.
// Returns 0 when no counter row exists; no row is created.
func (r *GormCounterRepository) Peek(ctx context.Context, documentType sequence.DocumentType, scope string) (int64, error) {
	var counter sequence.Counter
	err := r.db.WithContext(ctx).
		Where("document_type = ? AND scope = ?", documentType, scope).
		First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return counter.Value, nil
}

// IncrementAndGet atomically increments the counter and returns the new value.
// The row is created lazily at zero on first use. Two callers racing to create
// the same row collide on the unique index; the loser retries and finds the
// winner's row on the next pass.
func (r *GormCounterRepository) IncrementAndGet(ctx context.Context, documentType sequence.DocumentType, scope string) (int64, error) {
	var value int64

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var counter sequence.Counter
			err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("document_type = ? AND scope = ?", documentType, scope).
				First(&counter).Error

			if errors.Is(err, gorm.ErrRecordNotFound) {
				created, cerr := sequence.NewCounter(documentType, scope)
				if cerr != nil {
					return cerr
				}
				if cerr := tx.Create(created).Error; cerr != nil {
					return cerr
				}
				counter = *created
			} else if err != nil {
				return err
			}

			value, _ = counter.Advance()
			return tx.Model(&sequence.Counter{}).
				Where("id = ?", counter.ID).
				Updates(map[string]interface{}{
					"value":      counter.Value,
					"version":    counter.Version,
					"updated_at": counter.UpdatedAt,
				}).Error
		})

		if err == nil {
			return value, nil
		}
		if !isUniqueViolation(err) {
			return 0, err
		}
		// Lost the creation race; the row now exists, retry and lock it.
	}

	return 0, shared.ErrConcurrencyConflict
}

// Reset sets the counter to an explicit value, creating the row if absent
func (r *GormCounterRepository) Reset(ctx context.Context, documentType sequence.DocumentType, scope string, value int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var counter sequence.Counter
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("document_type = ? AND scope = ?", documentType, scope).
			First(&counter).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			created, cerr := sequence.NewCounter(documentType, scope)
			if cerr != nil {
				return cerr
			}
			if cerr := created.ResetTo(value); cerr != nil {
				return cerr
			}
			return tx.Create(created).Error
		}
		if err != nil {
			return err
		}

		if err := counter.ResetTo(value); err != nil {
			return err
		}
		return tx.Model(&sequence.Counter{}).
			Where("id = ?", counter.ID).
			Updates(map[string]interface{}{
				"value":      counter.Value,
				"version":    counter.Version,
				"updated_at": counter.UpdatedAt,
			}).Error
	})
}

// isUniqueViolation reports whether the error is a unique constraint violation
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505")
}

// Ensure GormCounterRepository implements CounterRepository
var _ sequence.CounterRepository = (*GormCounterRepository)(nil)
