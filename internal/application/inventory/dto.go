package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/warehouse/backend/internal/domain/inventory"
)

// AdjustRequest is the input for a manual stock adjustment
type AdjustRequest struct {
	ProductID   uuid.UUID `json:"productId" binding:"required"`
	WarehouseID uuid.UUID `json:"warehouseId" binding:"required"`
	Delta       int64     `json:"delta" binding:"required"`
}

// SetLocationRequest updates the slot label of a ledger record
type SetLocationRequest struct {
	Location string `json:"location" binding:"max=100"`
}

// ListFilter holds inventory listing options
type ListFilter struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"pageSize"`
	WarehouseID string `form:"warehouseId"`
	ProductID   string `form:"productId"`
}

// RecordResponse is the API representation of a ledger record
type RecordResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	WarehouseID uuid.UUID `json:"warehouseId"`
	Quantity    int64     `json:"quantity"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// QuantityResponse carries the current quantity of one (product, warehouse) pair
type QuantityResponse struct {
	ProductID   uuid.UUID `json:"productId"`
	WarehouseID uuid.UUID `json:"warehouseId"`
	Quantity    int64     `json:"quantity"`
}

// LowStockResponse is a ledger record flagged by its product threshold
type LowStockResponse struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductSKU  string    `json:"productSku"`
	ProductName string    `json:"productName"`
	WarehouseID uuid.UUID `json:"warehouseId"`
	Quantity    int64     `json:"quantity"`
	MinStock    int64     `json:"minStock"`
}

// ToRecordResponse converts a ledger record to its response
func ToRecordResponse(r *inventory.Record) RecordResponse {
	return RecordResponse{
		ID:          r.ID,
		ProductID:   r.ProductID,
		WarehouseID: r.WarehouseID,
		Quantity:    r.Quantity,
		Location:    r.Location,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ToRecordResponses converts a slice of ledger records
func ToRecordResponses(records []inventory.Record) []RecordResponse {
	responses := make([]RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, ToRecordResponse(&records[i]))
	}
	return responses
}

// ToLowStockResponses converts low stock items to their responses
func ToLowStockResponses(items []inventory.LowStockItem) []LowStockResponse {
	responses := make([]LowStockResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, LowStockResponse{
			ProductID:   item.ProductID,
			ProductSKU:  item.ProductSKU,
			ProductName: item.ProductName,
			WarehouseID: item.WarehouseID,
			Quantity:    item.Quantity,
			MinStock:    item.MinStock,
		})
	}
	return responses
}
