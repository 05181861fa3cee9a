package persistence

import (
	"context"
	"testing"

	"github.com/factoryops/backend/internal/domain/fulfillment"
	"github.com/factoryops/backend/internal/domain/sequence"
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupOrderTestDB creates an in-memory SQLite database for testing
func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE fulfillment_orders (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			reference TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			document_type TEXT,
			document_number TEXT,
			number_overridden INTEGER NOT NULL DEFAULT 0
		)
	`).Error
	require.NoError(t, err)

	return db
}

func newTestOrder(t *testing.T) *fulfillment.Order {
	t.Helper()
	order, err := fulfillment.NewOrder("SO-1001", sequence.DocumentTypeFinishedGoodsReceipt)
	require.NoError(t, err)
	return order
}

func TestGormOrderRepository_Save(t *testing.T) {
	t.Run("creates an order", func(t *testing.T) {
		repo := NewGormOrderRepository(setupOrderTestDB(t))
		order := newTestOrder(t)

		require.NoError(t, repo.Save(context.Background(), order))

		found, err := repo.FindByID(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, "SO-1001", found.Reference)
		assert.Equal(t, fulfillment.OrderStatusPending, found.Status)
		assert.Equal(t, sequence.DocumentTypeFinishedGoodsReceipt, found.DocumentType)
	})

	t.Run("persists a status stamp and document number", func(t *testing.T) {
		repo := NewGormOrderRepository(setupOrderTestDB(t))
		order := newTestOrder(t)
		require.NoError(t, repo.Save(context.Background(), order))

		order.AssignDocumentNumber("FG-D1-1")
		require.NoError(t, order.ApplyStatus(fulfillment.OrderStatusDelivered))
		require.NoError(t, repo.Save(context.Background(), order))

		found, err := repo.FindByID(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, fulfillment.OrderStatusDelivered, found.Status)
		assert.Equal(t, "FG-D1-1", found.DocumentNumber.String())
		assert.False(t, found.NumberOverridden)
	})

	t.Run("persists an overridden document number", func(t *testing.T) {
		repo := NewGormOrderRepository(setupOrderTestDB(t))
		order := newTestOrder(t)
		require.NoError(t, repo.Save(context.Background(), order))

		require.NoError(t, order.OverrideDocumentNumber("FG-D1-999"))
		require.NoError(t, repo.Save(context.Background(), order))

		found, err := repo.FindByID(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, "FG-D1-999", found.DocumentNumber.String())
		assert.True(t, found.NumberOverridden)
	})
}

func TestGormOrderRepository_FindByID(t *testing.T) {
	t.Run("maps missing order to not found", func(t *testing.T) {
		repo := NewGormOrderRepository(setupOrderTestDB(t))

		order, err := repo.FindByID(context.Background(), uuid.New())

		assert.Nil(t, order)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
