package receipt

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ImportLine is a line item on an import receipt. Lines are owned by their
// receipt and cannot exist independently.
type ImportLine struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReceiptID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   int64           `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"` // Quantity * UnitPrice
	Notes      string          `gorm:"type:varchar(500)"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ImportLine) TableName() string {
	return "import_receipt_lines"
}

// NewImportLine creates a new import line
func NewImportLine(receiptID, productID uuid.UUID, quantity int64, unitPrice decimal.Decimal) (*ImportLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &ImportLine{
		ID:         uuid.New(),
		ReceiptID:  receiptID,
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt(quantity)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// ImportReceipt records goods entering a warehouse, optionally from a supplier.
// The receipt has no stock effect until it transitions to completed.
type ImportReceipt struct {
	shared.BaseAggregateRoot
	ReceiptNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	WarehouseID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierID    *uuid.UUID      `gorm:"type:uuid;index"`
	Status        Status          `gorm:"type:varchar(20);not null;index"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Notes         string          `gorm:"type:varchar(1000)"`
	CreatedBy     uuid.UUID       `gorm:"type:uuid;not null"`
	Lines         []ImportLine    `gorm:"foreignKey:ReceiptID;references:ID"`
}

// TableName returns the table name for GORM
func (ImportReceipt) TableName() string {
	return "import_receipts"
}

// NewImportReceipt creates a pending import receipt without lines
func NewImportReceipt(receiptNumber string, warehouseID uuid.UUID, supplierID *uuid.UUID, createdBy uuid.UUID, notes string) (*ImportReceipt, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Creator ID cannot be empty")
	}

	return &ImportReceipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReceiptNumber:     receiptNumber,
		WarehouseID:       warehouseID,
		SupplierID:        supplierID,
		Status:            StatusPending,
		TotalAmount:       decimal.Zero,
		Notes:             notes,
		CreatedBy:         createdBy,
		Lines:             make([]ImportLine, 0),
	}, nil
}

// AddLine appends a line and recomputes the total. Only pending receipts accept lines.
func (r *ImportReceipt) AddLine(productID uuid.UUID, quantity int64, unitPrice decimal.Decimal) error {
	if r.Status != StatusPending {
		return shared.ErrInvalidState
	}
	line, err := NewImportLine(r.ID, productID, quantity, unitPrice)
	if err != nil {
		return err
	}
	r.Lines = append(r.Lines, *line)
	r.recomputeTotal()
	return nil
}

// recomputeTotal keeps TotalAmount equal to the sum of line totals.
// It is the only way TotalAmount changes.
func (r *ImportReceipt) recomputeTotal() {
	total := decimal.Zero
	for _, line := range r.Lines {
		total = total.Add(line.TotalPrice)
	}
	r.TotalAmount = total
	r.UpdatedAt = time.Now()
}

// TransitionTo moves the receipt to the target status per the full lifecycle
func (r *ImportReceipt) TransitionTo(target Status) error {
	next, err := transitionTo(r.Status, target, false)
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

// StockMovements returns the ledger deltas applied on completion:
// every line adds its quantity to the destination warehouse.
func (r *ImportReceipt) StockMovements() []inventory.Movement {
	movements := make([]inventory.Movement, 0, len(r.Lines))
	for _, line := range r.Lines {
		movements = append(movements, inventory.Movement{
			ProductID:   line.ProductID,
			WarehouseID: r.WarehouseID,
			Delta:       line.Quantity,
		})
	}
	return movements
}
