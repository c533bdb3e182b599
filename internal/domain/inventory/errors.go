package inventory

import (
	"fmt"

	"github.com/google/uuid"
)

// InsufficientStockError is returned when an adjustment or receipt completion
// would drive a ledger record negative. It identifies the first failing
// (product, warehouse) pair in line order together with the shortfall.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	WarehouseID uuid.UUID
	Requested   int64
	Available   int64
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s in warehouse %s: requested %d, available %d",
		e.ProductID, e.WarehouseID, e.Requested, e.Available)
}
