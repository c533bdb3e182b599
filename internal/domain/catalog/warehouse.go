package catalog

import (
	"time"

	"github.com/warehouse/backend/internal/domain/shared"
)

// WarehouseType represents the kind of warehouse
type WarehouseType string

const (
	WarehouseTypeMain   WarehouseType = "main"
	WarehouseTypeBranch WarehouseType = "branch"
)

// IsValid checks if the warehouse type is known
func (t WarehouseType) IsValid() bool {
	return t == WarehouseTypeMain || t == WarehouseTypeBranch
}

// Warehouse is the aggregate root for storage locations
type Warehouse struct {
	shared.BaseAggregateRoot
	Name     string        `gorm:"type:varchar(200);not null"`
	Type     WarehouseType `gorm:"type:varchar(20);not null"`
	Address  string        `gorm:"type:varchar(500)"`
	Phone    string        `gorm:"type:varchar(50)"`
	Manager  string        `gorm:"type:varchar(100)"`
	IsActive bool          `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse
func NewWarehouse(name string, warehouseType WarehouseType, address string) (*Warehouse, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}
	if !warehouseType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Warehouse type must be main or branch")
	}

	return &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Type:              warehouseType,
		Address:           address,
		IsActive:          true,
	}, nil
}

// Update changes the mutable warehouse attributes
func (w *Warehouse) Update(name, address, phone, manager string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}
	w.Name = name
	w.Address = address
	w.Phone = phone
	w.Manager = manager
	w.touch()
	return nil
}

// Deactivate marks the warehouse inactive; inactive warehouses cannot appear on new receipts
func (w *Warehouse) Deactivate() {
	w.IsActive = false
	w.touch()
}

// Activate marks the warehouse active again
func (w *Warehouse) Activate() {
	w.IsActive = true
	w.touch()
}

func (w *Warehouse) touch() {
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}
