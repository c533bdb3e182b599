package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/shared"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockInventoryRepository creates a GormInventoryRepository with a mocked SQL connection
func newMockInventoryRepository(t *testing.T) (*GormInventoryRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormInventoryRepository(gormDB), mock, mockDB
}

func recordRows(id, productID, warehouseID uuid.UUID, quantity int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "product_id", "warehouse_id", "quantity", "location", "version"}).
		AddRow(id, productID, warehouseID, quantity, "", 1)
}

func TestGormInventoryRepository_FindByID(t *testing.T) {
	t.Run("finds existing record", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		productID := uuid.New()
		warehouseID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE id = \$1`).
			WithArgs(recordID, 1).
			WillReturnRows(recordRows(recordID, productID, warehouseID, 42))

		record, err := repo.FindByID(context.Background(), recordID)

		require.NoError(t, err)
		assert.Equal(t, recordID, record.ID)
		assert.Equal(t, int64(42), record.Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE id = \$1`).
			WithArgs(recordID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		record, err := repo.FindByID(context.Background(), recordID)

		assert.Nil(t, record)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryRepository_GetQuantity(t *testing.T) {
	t.Run("absent record reads as zero", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		warehouseID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE product_id = \$1 AND warehouse_id = \$2`).
			WithArgs(productID, warehouseID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		quantity, err := repo.GetQuantity(context.Background(), productID, warehouseID)

		require.NoError(t, err)
		assert.Equal(t, int64(0), quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing record reads its quantity", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		warehouseID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE product_id = \$1 AND warehouse_id = \$2`).
			WithArgs(productID, warehouseID, 1).
			WillReturnRows(recordRows(uuid.New(), productID, warehouseID, 7))

		quantity, err := repo.GetQuantity(context.Background(), productID, warehouseID)

		require.NoError(t, err)
		assert.Equal(t, int64(7), quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryRepository_ApplyAdjustment(t *testing.T) {
	t.Run("conditional update applies the delta", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		warehouseID := uuid.New()

		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE product_id = \$1 AND warehouse_id = \$2`).
			WithArgs(productID, warehouseID, 1).
			WillReturnRows(recordRows(uuid.New(), productID, warehouseID, 15))

		quantity, err := repo.ApplyAdjustment(context.Background(), productID, warehouseID, 5)

		require.NoError(t, err)
		assert.Equal(t, int64(15), quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("guard rejection surfaces insufficient stock", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		warehouseID := uuid.New()

		// The guarded update matches no row; the record exists with quantity 3.
		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE product_id = \$1 AND warehouse_id = \$2`).
			WithArgs(productID, warehouseID, 1).
			WillReturnRows(recordRows(uuid.New(), productID, warehouseID, 3))

		_, err := repo.ApplyAdjustment(context.Background(), productID, warehouseID, -5)

		var stockErr *inventory.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int64(5), stockErr.Requested)
		assert.Equal(t, int64(3), stockErr.Available)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing record with negative delta reads as zero stock", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		warehouseID := uuid.New()

		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE product_id = \$1 AND warehouse_id = \$2`).
			WithArgs(productID, warehouseID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.ApplyAdjustment(context.Background(), productID, warehouseID, -2)

		var stockErr *inventory.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int64(2), stockErr.Requested)
		assert.Equal(t, int64(0), stockErr.Available)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing record with positive delta created lazily", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		warehouseID := uuid.New()

		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE product_id = \$1 AND warehouse_id = \$2`).
			WithArgs(productID, warehouseID, 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectExec(`INSERT INTO "inventory_records"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		quantity, err := repo.ApplyAdjustment(context.Background(), productID, warehouseID, 10)

		require.NoError(t, err)
		assert.Equal(t, int64(10), quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lost creation race reports a concurrency conflict", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		warehouseID := uuid.New()

		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE product_id = \$1 AND warehouse_id = \$2`).
			WithArgs(productID, warehouseID, 1).
			WillReturnError(gorm.ErrRecordNotFound)
		// ON CONFLICT DO NOTHING: a concurrent insert won the unique index.
		mock.ExpectExec(`INSERT INTO "inventory_records"`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.ApplyAdjustment(context.Background(), productID, warehouseID, 10)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryRepository_SaveWithLock(t *testing.T) {
	newVersionedRecord := func(t *testing.T) *inventory.Record {
		record, err := inventory.NewRecord(uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NoError(t, record.Adjust(5)) // bumps version to 2
		return record
	}

	t.Run("updates when the stored version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRepository(t)
		defer mockDB.Close()

		record := newVersionedRecord(t)
		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SaveWithLock(context.Background(), record))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale version reports a concurrency conflict", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryRepository(t)
		defer mockDB.Close()

		record := newVersionedRecord(t)
		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), record)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
