package receipt

import (
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/shared"
)

// TransferItem is a line item on a transfer receipt. Transfers move
// quantities, not money, so there is no price on the line.
type TransferItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ReceiptID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity  int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TransferItem) TableName() string {
	return "transfer_receipt_items"
}

// NewTransferItem creates a new transfer item
func NewTransferItem(receiptID, productID uuid.UUID, quantity int64) (*TransferItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	now := time.Now()
	return &TransferItem{
		ID:        uuid.New(),
		ReceiptID: receiptID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// TransferReceipt moves stock between two warehouses. Transfers skip the
// approval step: a pending transfer completes or cancels directly.
type TransferReceipt struct {
	shared.BaseAggregateRoot
	ReceiptNumber     string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	ExportWarehouseID uuid.UUID      `gorm:"type:uuid;not null;index"` // source
	ImportWarehouseID uuid.UUID      `gorm:"type:uuid;not null;index"` // destination
	Status            Status         `gorm:"type:varchar(20);not null;index"`
	Notes             string         `gorm:"type:varchar(1000)"`
	CreatedBy         uuid.UUID      `gorm:"type:uuid;not null"`
	Items             []TransferItem `gorm:"foreignKey:ReceiptID;references:ID"`
}

// TableName returns the table name for GORM
func (TransferReceipt) TableName() string {
	return "transfer_receipts"
}

// NewTransferReceipt creates a pending transfer receipt without items
func NewTransferReceipt(receiptNumber string, exportWarehouseID, importWarehouseID, createdBy uuid.UUID, notes string) (*TransferReceipt, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if exportWarehouseID == uuid.Nil || importWarehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Both warehouses must be selected")
	}
	if exportWarehouseID == importWarehouseID {
		return nil, shared.NewDomainError("SAME_WAREHOUSE", "Source and destination warehouses must differ")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Creator ID cannot be empty")
	}

	return &TransferReceipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReceiptNumber:     receiptNumber,
		ExportWarehouseID: exportWarehouseID,
		ImportWarehouseID: importWarehouseID,
		Status:            StatusPending,
		Notes:             notes,
		CreatedBy:         createdBy,
		Items:             make([]TransferItem, 0),
	}, nil
}

// AddItem appends an item. Only pending receipts accept items.
func (r *TransferReceipt) AddItem(productID uuid.UUID, quantity int64) error {
	if r.Status != StatusPending {
		return shared.ErrInvalidState
	}
	item, err := NewTransferItem(r.ID, productID, quantity)
	if err != nil {
		return err
	}
	r.Items = append(r.Items, *item)
	r.UpdatedAt = time.Now()
	return nil
}

// TransitionTo moves the receipt to the target status per the reduced lifecycle
func (r *TransferReceipt) TransitionTo(target Status) error {
	next, err := transitionTo(r.Status, target, true)
	if err != nil {
		return err
	}
	if next == r.Status {
		return nil
	}
	r.Status = next
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// StockMovements returns the ledger deltas applied on completion. The source
// deduction precedes the destination addition for each item so availability
// is validated against the source warehouse first.
func (r *TransferReceipt) StockMovements() []inventory.Movement {
	movements := make([]inventory.Movement, 0, len(r.Items)*2)
	for _, item := range r.Items {
		movements = append(movements,
			inventory.Movement{ProductID: item.ProductID, WarehouseID: r.ExportWarehouseID, Delta: -item.Quantity},
			inventory.Movement{ProductID: item.ProductID, WarehouseID: r.ImportWarehouseID, Delta: item.Quantity},
		)
	}
	return movements
}
