package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Record is the authoritative stock ledger entry for one (product, warehouse) pair.
// Exactly one record exists per pair; it is created lazily on the first stock
// movement and its quantity never goes negative.
type Record struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_warehouse,priority:1"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_warehouse,priority:2"`
	Quantity    int64     `gorm:"not null;default:0"`
	Location    string    `gorm:"type:varchar(100)"` // free-text slot label, no stock invariant
}

// TableName returns the table name for GORM
func (Record) TableName() string {
	return "inventory_records"
}

// NewRecord creates a new ledger record with zero quantity
func NewRecord(productID, warehouseID uuid.UUID) (*Record, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	return &Record{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		WarehouseID:       warehouseID,
		Quantity:          0,
	}, nil
}

// Adjust adds delta (which may be negative) to the stored quantity.
// The adjustment is all-or-nothing: a delta that would drive the quantity
// negative is rejected with InsufficientStockError and nothing changes.
func (r *Record) Adjust(delta int64) error {
	if r.Quantity+delta < 0 {
		return &InsufficientStockError{
			ProductID:   r.ProductID,
			WarehouseID: r.WarehouseID,
			Requested:   -delta,
			Available:   r.Quantity,
		}
	}
	r.Quantity += delta
	r.touch()
	return nil
}

// SetLocation updates the slot label. Metadata only, does not affect quantity.
func (r *Record) SetLocation(location string) {
	r.Location = location
	r.touch()
}

func (r *Record) touch() {
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
}
