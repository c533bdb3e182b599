package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	t.Run("starts with zero quantity", func(t *testing.T) {
		rec, err := NewRecord(uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, int64(0), rec.Quantity)
		assert.Equal(t, 1, rec.Version)
	})

	t.Run("nil product rejected", func(t *testing.T) {
		_, err := NewRecord(uuid.Nil, uuid.New())
		assert.Error(t, err)
	})

	t.Run("nil warehouse rejected", func(t *testing.T) {
		_, err := NewRecord(uuid.New(), uuid.Nil)
		assert.Error(t, err)
	})
}

func TestRecord_Adjust(t *testing.T) {
	t.Run("positive delta adds", func(t *testing.T) {
		rec, err := NewRecord(uuid.New(), uuid.New())
		require.NoError(t, err)

		require.NoError(t, rec.Adjust(10))
		assert.Equal(t, int64(10), rec.Quantity)

		require.NoError(t, rec.Adjust(-4))
		assert.Equal(t, int64(6), rec.Quantity)
	})

	t.Run("delta driving quantity negative rejected", func(t *testing.T) {
		rec, err := NewRecord(uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NoError(t, rec.Adjust(5))

		err = rec.Adjust(-8)
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, rec.ProductID, stockErr.ProductID)
		assert.Equal(t, rec.WarehouseID, stockErr.WarehouseID)
		assert.Equal(t, int64(8), stockErr.Requested)
		assert.Equal(t, int64(5), stockErr.Available)

		// Nothing changed.
		assert.Equal(t, int64(5), rec.Quantity)
	})

	t.Run("draining to exactly zero allowed", func(t *testing.T) {
		rec, err := NewRecord(uuid.New(), uuid.New())
		require.NoError(t, err)
		require.NoError(t, rec.Adjust(5))
		require.NoError(t, rec.Adjust(-5))
		assert.Equal(t, int64(0), rec.Quantity)
	})

	t.Run("increments version", func(t *testing.T) {
		rec, err := NewRecord(uuid.New(), uuid.New())
		require.NoError(t, err)
		before := rec.Version
		require.NoError(t, rec.Adjust(1))
		assert.Equal(t, before+1, rec.Version)
	})
}

func TestRecord_SetLocation(t *testing.T) {
	rec, err := NewRecord(uuid.New(), uuid.New())
	require.NoError(t, err)

	rec.SetLocation("A-01-03")
	assert.Equal(t, "A-01-03", rec.Location)
	assert.Equal(t, int64(0), rec.Quantity)
}
