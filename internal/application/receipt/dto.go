package receipt

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/receipt"
)

// LineRequest is one priced line on an import or export creation request
type LineRequest struct {
	ProductID uuid.UUID       `json:"productId" binding:"required"`
	Quantity  int64           `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Notes     string          `json:"notes"`
}

// ItemRequest is one unpriced item on a transfer creation request
type ItemRequest struct {
	ProductID uuid.UUID `json:"productId" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
}

// CreateImportRequest is the input for creating an import receipt
type CreateImportRequest struct {
	WarehouseID uuid.UUID     `json:"warehouseId" binding:"required"`
	SupplierID  *uuid.UUID    `json:"supplierId"`
	Notes       string        `json:"notes"`
	Lines       []LineRequest `json:"details" binding:"required,min=1,dive"`
}

// CreateExportRequest is the input for creating an export receipt
type CreateExportRequest struct {
	WarehouseID     uuid.UUID     `json:"warehouseId" binding:"required"`
	ExportType      string        `json:"exportType" binding:"required,oneof=sale transfer return other"`
	CustomerName    string        `json:"customerName"`
	CustomerPhone   string        `json:"customerPhone"`
	CustomerAddress string        `json:"customerAddress"`
	Notes           string        `json:"notes"`
	Lines           []LineRequest `json:"details" binding:"required,min=1,dive"`
}

// CreateTransferRequest is the input for creating a transfer receipt
type CreateTransferRequest struct {
	ExportWarehouseID uuid.UUID     `json:"exportWarehouseId" binding:"required"`
	ImportWarehouseID uuid.UUID     `json:"importWarehouseId" binding:"required"`
	Notes             string        `json:"note"`
	Items             []ItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateStatusRequest carries the target status for a receipt transition
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved completed cancelled"`
}

// ListFilter holds common receipt listing options
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
	Status   string `form:"status"`
}

// LineResponse is the API representation of a priced line
type LineResponse struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"productId"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Notes      string          `json:"notes,omitempty"`
}

// ItemResponse is the API representation of a transfer item
type ItemResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int64     `json:"quantity"`
}

// ImportReceiptResponse is the API representation of an import receipt
type ImportReceiptResponse struct {
	ID            uuid.UUID       `json:"id"`
	ReceiptNumber string          `json:"receiptNumber"`
	WarehouseID   uuid.UUID       `json:"warehouseId"`
	SupplierID    *uuid.UUID      `json:"supplierId,omitempty"`
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Notes         string          `json:"notes,omitempty"`
	CreatedBy     uuid.UUID       `json:"createdById"`
	Details       []LineResponse  `json:"details"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ExportReceiptResponse is the API representation of an export receipt
type ExportReceiptResponse struct {
	ID              uuid.UUID       `json:"id"`
	ReceiptNumber   string          `json:"receiptNumber"`
	WarehouseID     uuid.UUID       `json:"warehouseId"`
	ExportType      string          `json:"exportType"`
	CustomerName    string          `json:"customerName,omitempty"`
	CustomerPhone   string          `json:"customerPhone,omitempty"`
	CustomerAddress string          `json:"customerAddress,omitempty"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Notes           string          `json:"notes,omitempty"`
	CreatedBy       uuid.UUID       `json:"createdById"`
	Details         []LineResponse  `json:"details"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// TransferReceiptResponse is the API representation of a transfer receipt
type TransferReceiptResponse struct {
	ID                uuid.UUID      `json:"id"`
	ReceiptNumber     string         `json:"code"`
	ExportWarehouseID uuid.UUID      `json:"exportWarehouseId"`
	ImportWarehouseID uuid.UUID      `json:"importWarehouseId"`
	Status            string         `json:"status"`
	Notes             string         `json:"note,omitempty"`
	CreatedBy         uuid.UUID      `json:"createdById"`
	Items             []ItemResponse `json:"items"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// ToImportReceiptResponse converts an import receipt aggregate to its response
func ToImportReceiptResponse(r *receipt.ImportReceipt) ImportReceiptResponse {
	details := make([]LineResponse, 0, len(r.Lines))
	for _, line := range r.Lines {
		details = append(details, LineResponse{
			ID:         line.ID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
			Notes:      line.Notes,
		})
	}
	return ImportReceiptResponse{
		ID:            r.ID,
		ReceiptNumber: r.ReceiptNumber,
		WarehouseID:   r.WarehouseID,
		SupplierID:    r.SupplierID,
		Status:        r.Status.String(),
		TotalAmount:   r.TotalAmount,
		Notes:         r.Notes,
		CreatedBy:     r.CreatedBy,
		Details:       details,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// ToImportReceiptResponses converts a slice of import receipts
func ToImportReceiptResponses(receipts []receipt.ImportReceipt) []ImportReceiptResponse {
	responses := make([]ImportReceiptResponse, 0, len(receipts))
	for i := range receipts {
		responses = append(responses, ToImportReceiptResponse(&receipts[i]))
	}
	return responses
}

// ToExportReceiptResponse converts an export receipt aggregate to its response
func ToExportReceiptResponse(r *receipt.ExportReceipt) ExportReceiptResponse {
	details := make([]LineResponse, 0, len(r.Lines))
	for _, line := range r.Lines {
		details = append(details, LineResponse{
			ID:         line.ID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
			Notes:      line.Notes,
		})
	}
	return ExportReceiptResponse{
		ID:              r.ID,
		ReceiptNumber:   r.ReceiptNumber,
		WarehouseID:     r.WarehouseID,
		ExportType:      string(r.ExportType),
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
		Status:          r.Status.String(),
		TotalAmount:     r.TotalAmount,
		Notes:           r.Notes,
		CreatedBy:       r.CreatedBy,
		Details:         details,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ToExportReceiptResponses converts a slice of export receipts
func ToExportReceiptResponses(receipts []receipt.ExportReceipt) []ExportReceiptResponse {
	responses := make([]ExportReceiptResponse, 0, len(receipts))
	for i := range receipts {
		responses = append(responses, ToExportReceiptResponse(&receipts[i]))
	}
	return responses
}

// ToTransferReceiptResponse converts a transfer receipt aggregate to its response
func ToTransferReceiptResponse(r *receipt.TransferReceipt) TransferReceiptResponse {
	items := make([]ItemResponse, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, ItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return TransferReceiptResponse{
		ID:                r.ID,
		ReceiptNumber:     r.ReceiptNumber,
		ExportWarehouseID: r.ExportWarehouseID,
		ImportWarehouseID: r.ImportWarehouseID,
		Status:            r.Status.String(),
		Notes:             r.Notes,
		CreatedBy:         r.CreatedBy,
		Items:             items,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// ToTransferReceiptResponses converts a slice of transfer receipts
func ToTransferReceiptResponses(receipts []receipt.TransferReceipt) []TransferReceiptResponse {
	responses := make([]TransferReceiptResponse, 0, len(receipts))
	for i := range receipts {
		responses = append(responses, ToTransferReceiptResponse(&receipts[i]))
	}
	return responses
}
