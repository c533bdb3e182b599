package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Movement is a single quantity delta against one ledger record.
// Receipts express their stock effect as an ordered sequence of movements.
type Movement struct {
	ProductID   uuid.UUID
	WarehouseID uuid.UUID
	Delta       int64
}

// LowStockItem is a ledger record joined with the product threshold that flagged it
type LowStockItem struct {
	Record
	ProductSKU  string
	ProductName string
	MinStock    int64
}

// Repository defines persistence operations for the inventory ledger
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)
	FindByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*Record, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Record, error)
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]Record, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Record, error)
	// FindLowStock returns records with quantity at or below the product's
	// minimum stock threshold. No defined order; consumers sort.
	FindLowStock(ctx context.Context) ([]LowStockItem, error)

	// GetQuantity returns the stored quantity, or 0 when no record exists.
	// Absence means zero stock, not an error.
	GetQuantity(ctx context.Context, productID, warehouseID uuid.UUID) (int64, error)

	// ApplyAdjustment atomically adds delta to the record's quantity, creating
	// the record when absent for a non-negative delta. The read-modify-write is
	// a single conditional statement, so a delta that would drive the quantity
	// negative fails with InsufficientStockError without applying anything.
	// Returns the new quantity. May fail with shared.ErrConcurrencyConflict
	// when a concurrent creation races; callers retry.
	ApplyAdjustment(ctx context.Context, productID, warehouseID uuid.UUID, delta int64) (int64, error)

	Save(ctx context.Context, record *Record) error
	SaveWithLock(ctx context.Context, record *Record) error
}
