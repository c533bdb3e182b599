package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/warehouse/backend/internal/application/inventory"
)

// InventoryHandler handles inventory ledger endpoints
type InventoryHandler struct {
	BaseHandler
	ledgerService *inventoryapp.LedgerService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(ledgerService *inventoryapp.LedgerService) *InventoryHandler {
	return &InventoryHandler{ledgerService: ledgerService}
}

// RegisterRoutes registers inventory routes
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")
	{
		inv.GET("", h.List)
		inv.GET("/quantity", h.GetQuantity)
		inv.POST("/adjust", h.Adjust)
		inv.PATCH("/:id/location", h.SetLocation)
		inv.GET("/warehouse/:warehouse_id", h.ListByWarehouse)
		inv.GET("/product/:product_id", h.ListByProduct)
		inv.GET("/alerts/low-stock", h.ListLowStock)
	}
}

// List returns ledger records with optional warehouse/product filtering
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventoryapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	records, err := h.ledgerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// GetQuantity returns the on-hand quantity for a product in a warehouse.
// Pairs with no ledger record report a quantity of zero.
func (h *InventoryHandler) GetQuantity(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	warehouseID, err := uuid.Parse(c.Query("warehouseId"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	quantity, err := h.ledgerService.GetQuantity(c.Request.Context(), productID, warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quantity)
}

// Adjust applies a manual stock adjustment
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req inventoryapp.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	quantity, err := h.ledgerService.Adjust(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, quantity)
}

// SetLocation updates the bin location label of a ledger record
func (h *InventoryHandler) SetLocation(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid record ID format")
		return
	}

	var req inventoryapp.SetLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	record, err := h.ledgerService.SetLocation(c.Request.Context(), id, req.Location)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, record)
}

// ListByWarehouse returns ledger records for a warehouse
func (h *InventoryHandler) ListByWarehouse(c *gin.Context) {
	warehouseID, err := parseIDParam(c, "warehouse_id")
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID format")
		return
	}

	records, err := h.ledgerService.ListByWarehouse(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// ListByProduct returns ledger records for a product across warehouses
func (h *InventoryHandler) ListByProduct(c *gin.Context) {
	productID, err := parseIDParam(c, "product_id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	records, err := h.ledgerService.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, records)
}

// ListLowStock returns records at or below their product's minimum threshold
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	alerts, err := h.ledgerService.ListLowStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, alerts)
}
