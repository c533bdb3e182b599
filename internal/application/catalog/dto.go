package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehouse/backend/internal/domain/catalog"
)

// CreateProductRequest is the input for creating a product
type CreateProductRequest struct {
	SKU          string          `json:"sku" binding:"required,max=50"`
	Name         string          `json:"name" binding:"required,max=200"`
	Description  string          `json:"description" binding:"max=1000"`
	Unit         string          `json:"unit" binding:"required,max=20"`
	Brand        string          `json:"brand" binding:"max=100"`
	CategoryID   *uuid.UUID      `json:"categoryId"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	MinStock     int64           `json:"minStock" binding:"gte=0"`
	MaxStock     int64           `json:"maxStock" binding:"gte=0"`
}

// UpdateProductRequest is the input for updating a product
type UpdateProductRequest struct {
	Name         string          `json:"name" binding:"required,max=200"`
	Description  string          `json:"description" binding:"max=1000"`
	Brand        string          `json:"brand" binding:"max=100"`
	CategoryID   *uuid.UUID      `json:"categoryId"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	MinStock     int64           `json:"minStock" binding:"gte=0"`
	MaxStock     int64           `json:"maxStock" binding:"gte=0"`
}

// CreateCategoryRequest is the input for creating a category
type CreateCategoryRequest struct {
	Code        string     `json:"code" binding:"required,max=50"`
	Name        string     `json:"name" binding:"required,max=100"`
	Description string     `json:"description" binding:"max=1000"`
	ParentID    *uuid.UUID `json:"parentId"`
}

// UpdateCategoryRequest is the input for updating a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=1000"`
}

// CreateWarehouseRequest is the input for creating a warehouse
type CreateWarehouseRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Type    string `json:"type" binding:"required,oneof=main branch"`
	Address string `json:"address" binding:"max=500"`
	Phone   string `json:"phone" binding:"max=50"`
	Manager string `json:"manager" binding:"max=100"`
}

// UpdateWarehouseRequest is the input for updating a warehouse
type UpdateWarehouseRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Address string `json:"address" binding:"max=500"`
	Phone   string `json:"phone" binding:"max=50"`
	Manager string `json:"manager" binding:"max=100"`
}

// ListFilter holds common catalog listing options
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
	Search   string `form:"search"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Unit         string          `json:"unit"`
	Brand        string          `json:"brand,omitempty"`
	CategoryID   *uuid.UUID      `json:"categoryId,omitempty"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	MinStock     int64           `json:"minStock"`
	MaxStock     int64           `json:"maxStock"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// CategoryResponse is the API representation of a category. Children is
// populated only by the tree listing.
type CategoryResponse struct {
	ID          uuid.UUID           `json:"id"`
	Code        string              `json:"code"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	ParentID    *uuid.UUID          `json:"parentId,omitempty"`
	Children    []*CategoryResponse `json:"children,omitempty"`
	IsActive    bool                `json:"isActive"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// WarehouseResponse is the API representation of a warehouse
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Manager   string    `json:"manager,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToProductResponse converts a product to its response
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Unit:         p.Unit,
		Brand:        p.Brand,
		CategoryID:   p.CategoryID,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		MinStock:     p.MinStock,
		MaxStock:     p.MaxStock,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses
}

// ToCategoryResponse converts a category to its response
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return responses
}

// ToWarehouseResponse converts a warehouse to its response
func ToWarehouseResponse(w *catalog.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Type:      string(w.Type),
		Address:   w.Address,
		Phone:     w.Phone,
		Manager:   w.Manager,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// ToWarehouseResponses converts a slice of warehouses
func ToWarehouseResponses(warehouses []catalog.Warehouse) []WarehouseResponse {
	responses := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		responses = append(responses, ToWarehouseResponse(&warehouses[i]))
	}
	return responses
}
