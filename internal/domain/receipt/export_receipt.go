package receipt

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/inventory"
	"github.com/warehouse/backend/internal/domain/shared"
)

// ExportType classifies why goods leave the warehouse
type ExportType string

const (
	ExportTypeSale     ExportType = "sale"
	ExportTypeTransfer ExportType = "transfer"
	ExportTypeReturn   ExportType = "return"
	ExportTypeOther    ExportType = "other"
)

// IsValid checks if the export type is known
func (t ExportType) IsValid() bool {
	switch t {
	case ExportTypeSale, ExportTypeTransfer, ExportTypeReturn, ExportTypeOther:
		return true
	}
	return false
}

// ExportLine is a line item on an export receipt
type ExportLine struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReceiptID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   int64           `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Notes      string          `gorm:"type:varchar(500)"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExportLine) TableName() string {
	return "export_receipt_lines"
}

// NewExportLine creates a new export line
func NewExportLine(receiptID, productID uuid.UUID, quantity int64, unitPrice decimal.Decimal) (*ExportLine, error) {
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
	return &ExportLine{
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

// ExportReceipt records goods leaving a warehouse. Stock availability is only
// enforced when the receipt completes, not at creation: a pending export may
// be provisionally over-committed.
type ExportReceipt struct {
	shared.BaseAggregateRoot
	ReceiptNumber   string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	WarehouseID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ExportType      ExportType      `gorm:"type:varchar(20);not null"`
	CustomerName    string          `gorm:"type:varchar(200)"`
	CustomerPhone   string          `gorm:"type:varchar(50)"`
	CustomerAddress string          `gorm:"type:varchar(500)"`
	Status          Status          `gorm:"type:varchar(20);not null;index"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Notes           string          `gorm:"type:varchar(1000)"`
	CreatedBy       uuid.UUID       `gorm:"type:uuid;not null"`
	Lines           []ExportLine    `gorm:"foreignKey:ReceiptID;references:ID"`
}

// TableName returns the table name for GORM
func (ExportReceipt) TableName() string {
	return "export_receipts"
}

// NewExportReceipt creates a pending export receipt without lines
func NewExportReceipt(receiptNumber string, warehouseID uuid.UUID, exportType ExportType, createdBy uuid.UUID, notes string) (*ExportReceipt, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if !exportType.IsValid() {
		return nil, shared.NewDomainError("INVALID_EXPORT_TYPE", "Export type must be sale, transfer, return or other")
	}
	if createdBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Creator ID cannot be empty")
	}

	return &ExportReceipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReceiptNumber:     receiptNumber,
		WarehouseID:       warehouseID,
		ExportType:        exportType,
		Status:            StatusPending,
		TotalAmount:       decimal.Zero,
		Notes:             notes,
		CreatedBy:         createdBy,
		Lines:             make([]ExportLine, 0),
	}, nil
}

// SetCustomer records the customer contact fields
func (r *ExportReceipt) SetCustomer(name, phone, address string) {
	r.CustomerName = name
	r.CustomerPhone = phone
	r.CustomerAddress = address
	r.UpdatedAt = time.Now()
}

// AddLine appends a line and recomputes the total. Only pending receipts accept lines.
func (r *ExportReceipt) AddLine(productID uuid.UUID, quantity int64, unitPrice decimal.Decimal) error {
	if r.Status != StatusPending {
		return shared.ErrInvalidState
	}
	line, err := NewExportLine(r.ID, productID, quantity, unitPrice)
	if err != nil {
		return err
	}
	r.Lines = append(r.Lines, *line)
	r.recomputeTotal()
	return nil
}

func (r *ExportReceipt) recomputeTotal() {
	total := decimal.Zero
	for _, line := range r.Lines {
		total = total.Add(line.TotalPrice)
	}
	r.TotalAmount = total
	r.UpdatedAt = time.Now()
}

// TransitionTo moves the receipt to the target status per the full lifecycle
func (r *ExportReceipt) TransitionTo(target Status) error {
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
// every line subtracts its quantity from the source warehouse.
func (r *ExportReceipt) StockMovements() []inventory.Movement {
	movements := make([]inventory.Movement, 0, len(r.Lines))
	for _, line := range r.Lines {
		movements = append(movements, inventory.Movement{
			ProductID:   line.ProductID,
			WarehouseID: r.WarehouseID,
			Delta:       -line.Quantity,
		})
	}
	return movements
}
