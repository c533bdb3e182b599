package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/shared"
)

// Product is the aggregate root for catalog products.
// Products are master data: receipts and inventory reference them but never mutate them.
type Product struct {
	shared.BaseAggregateRoot
	SKU          string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:varchar(1000)"`
	Unit         string          `gorm:"type:varchar(20);not null"`
	Brand        string          `gorm:"type:varchar(100)"`
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SellingPrice decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	MinStock     int64           `gorm:"not null;default:0"` // low-stock alert threshold
	MaxStock     int64           `gorm:"not null;default:0"`
	IsActive     bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(sku, name, unit string, costPrice, sellingPrice decimal.Decimal, minStock, maxStock int64) (*Product, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if costPrice.IsNegative() || sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	if minStock < 0 || maxStock < 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Stock thresholds cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Name:              name,
		Unit:              unit,
		CostPrice:         costPrice,
		SellingPrice:      sellingPrice,
		MinStock:          minStock,
		MaxStock:          maxStock,
		IsActive:          true,
	}, nil
}

// UpdatePrices updates cost and selling price
func (p *Product) UpdatePrices(costPrice, sellingPrice decimal.Decimal) error {
	if costPrice.IsNegative() || sellingPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	p.CostPrice = costPrice
	p.SellingPrice = sellingPrice
	p.touch()
	return nil
}

// UpdateThresholds updates the min/max stock thresholds
func (p *Product) UpdateThresholds(minStock, maxStock int64) error {
	if minStock < 0 || maxStock < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Stock thresholds cannot be negative")
	}
	p.MinStock = minStock
	p.MaxStock = maxStock
	p.touch()
	return nil
}

// SetCategory assigns or clears the product's category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.touch()
}

// Rename updates the display name
func (p *Product) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.touch()
	return nil
}

// Deactivate marks the product inactive; inactive products cannot appear on new receipts
func (p *Product) Deactivate() {
	p.IsActive = false
	p.touch()
}

// Activate marks the product active again
func (p *Product) Activate() {
	p.IsActive = true
	p.touch()
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
