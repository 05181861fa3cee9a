package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/factoryops/backend/internal/domain/shared"
	"github.com/factoryops/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockStockLineRepository creates a GormStockLineRepository with a mocked SQL connection
func newMockStockLineRepository(t *testing.T) (*GormStockLineRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStockLineRepository(gormDB), mock, mockDB
}

func stockLineRows(id, variantID uuid.UUID, location string, quantity int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version",
		"location_code", "variant_id", "quantity", "reorder_threshold",
		"display_name", "unit_price", "attributes",
	}).AddRow(id, now, now, 1, location, variantID, quantity, 0, "Widget", decimal.NewFromInt(10), "")
}

func TestGormStockLineRepository_FindByLocationAndVariant(t *testing.T) {
	t.Run("finds existing line", func(t *testing.T) {
		repo, mock, mockDB := newMockStockLineRepository(t)
		defer mockDB.Close()

		lineID := uuid.New()
		variantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_lines" WHERE location_code = \$1 AND variant_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(stock.CentralLocation, variantID, 1).
			WillReturnRows(stockLineRows(lineID, variantID, stock.CentralLocation, 25))

		line, err := repo.FindByLocationAndVariant(context.Background(), stock.CentralLocation, variantID)

		assert.NoError(t, err)
		require.NotNil(t, line)
		assert.Equal(t, lineID, line.ID)
		assert.Equal(t, int64(25), line.Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing line to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockStockLineRepository(t)
		defer mockDB.Close()

		variantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_lines" WHERE location_code = \$1 AND variant_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("D1", variantID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		line, err := repo.FindByLocationAndVariant(context.Background(), "D1", variantID)

		assert.Nil(t, line)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockLineRepository_FindForUpdate(t *testing.T) {
	t.Run("acquires a row lock", func(t *testing.T) {
		repo, mock, mockDB := newMockStockLineRepository(t)
		defer mockDB.Close()

		lineID := uuid.New()
		variantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_lines" WHERE location_code = \$1 AND variant_id = \$2 ORDER BY .* FOR UPDATE`).
			WithArgs(stock.CentralLocation, variantID, 1).
			WillReturnRows(stockLineRows(lineID, variantID, stock.CentralLocation, 25))

		line, err := repo.FindForUpdate(context.Background(), stock.CentralLocation, variantID)

		assert.NoError(t, err)
		require.NotNil(t, line)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing line to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockStockLineRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "stock_lines" .* FOR UPDATE`).
			WillReturnError(gorm.ErrRecordNotFound)

		line, err := repo.FindForUpdate(context.Background(), "D1", uuid.New())

		assert.Nil(t, line)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormStockLineRepository_FindBelowThreshold(t *testing.T) {
	t.Run("filters on the line's own threshold", func(t *testing.T) {
		repo, mock, mockDB := newMockStockLineRepository(t)
		defer mockDB.Close()

		variantID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "stock_lines" WHERE quantity <= reorder_threshold ORDER BY created_at DESC`).
			WillReturnRows(stockLineRows(uuid.New(), variantID, stock.CentralLocation, 2))

		lines, err := repo.FindBelowThreshold(context.Background(), shared.Filter{})

		assert.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, variantID, lines[0].VariantID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies pagination", func(t *testing.T) {
		repo, mock, mockDB := newMockStockLineRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "stock_lines" WHERE quantity <= reorder_threshold ORDER BY created_at DESC LIMIT .* OFFSET .*`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindBelowThreshold(context.Background(), shared.Filter{Page: 2, PageSize: 10})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockLineRepository_FindByLocation(t *testing.T) {
	t.Run("lists lines at a location", func(t *testing.T) {
		repo, mock, mockDB := newMockStockLineRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "stock_lines" WHERE location_code = \$1 ORDER BY created_at DESC`).
			WithArgs("D1").
			WillReturnRows(stockLineRows(uuid.New(), uuid.New(), "D1", 5))

		lines, err := repo.FindByLocation(context.Background(), "D1", shared.Filter{})

		assert.NoError(t, err)
		assert.Len(t, lines, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockLineRepository_ExistsByLocationAndVariant(t *testing.T) {
	t.Run("reports existence", func(t *testing.T) {
		repo, mock, mockDB := newMockStockLineRepository(t)
		defer mockDB.Close()

		variantID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "stock_lines" WHERE location_code = \$1 AND variant_id = \$2`).
			WithArgs("D1", variantID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByLocationAndVariant(context.Background(), "D1", variantID)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
