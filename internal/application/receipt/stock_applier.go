package receipt

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/inventory"
)

// StockApplier applies a receipt's stock movements to the inventory ledger.
// It is invoked only by the receipt services while transitioning a receipt
// into completed, inside a transaction scope.
type StockApplier struct{}

// NewStockApplier creates a new StockApplier
func NewStockApplier() *StockApplier {
	return &StockApplier{}
}

type recordKey struct {
	productID   uuid.UUID
	warehouseID uuid.UUID
}

// Apply validates and applies all movements of one receipt against the ledger.
// Movements touching the same (product, warehouse) pair are summed before the
// availability check. Validation walks the merged deltas in first-seen line
// order, so the error names the first failing line's pair; only after every
// source-side delta validates are any adjustments issued. The ledger's
// conditional update re-checks availability at apply time, and the surrounding
// transaction rolls the whole batch back on any failure.
func (a *StockApplier) Apply(ctx context.Context, ledger inventory.Repository, movements []inventory.Movement) error {
	merged := make(map[recordKey]int64, len(movements))
	order := make([]recordKey, 0, len(movements))
	for _, m := range movements {
		key := recordKey{productID: m.ProductID, warehouseID: m.WarehouseID}
		if _, seen := merged[key]; !seen {
			order = append(order, key)
		}
		merged[key] += m.Delta
	}

	for _, key := range order {
		delta := merged[key]
		if delta >= 0 {
			continue
		}
		available, err := ledger.GetQuantity(ctx, key.productID, key.warehouseID)
		if err != nil {
			return err
		}
		if available+delta < 0 {
			return &inventory.InsufficientStockError{
				ProductID:   key.productID,
				WarehouseID: key.warehouseID,
				Requested:   -delta,
				Available:   available,
			}
		}
	}

	for _, key := range order {
		if _, err := ledger.ApplyAdjustment(ctx, key.productID, key.warehouseID, merged[key]); err != nil {
			return err
		}
	}
	return nil
}
