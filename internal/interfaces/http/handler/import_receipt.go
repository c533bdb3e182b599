package handler

import (
	"github.com/gin-gonic/gin"
	receiptapp "github.com/warehouse/backend/internal/application/receipt"
	"github.com/warehouse/backend/internal/domain/receipt"
)

// ImportReceiptHandler handles import receipt endpoints
type ImportReceiptHandler struct {
	BaseHandler
	importService *receiptapp.ImportService
}

// NewImportReceiptHandler creates a new ImportReceiptHandler
func NewImportReceiptHandler(importService *receiptapp.ImportService) *ImportReceiptHandler {
	return &ImportReceiptHandler{importService: importService}
}

// RegisterRoutes registers import receipt routes
func (h *ImportReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	imports := rg.Group("/imports")
	{
		imports.POST("", h.Create)
		imports.GET("", h.List)
		imports.GET("/:id", h.GetByID)
		imports.PATCH("/:id/status", h.UpdateStatus)
	}
}

// Create creates a new import receipt in pending status
func (h *ImportReceiptHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req receiptapp.CreateImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rec, err := h.importService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, rec)
}

// List returns a paginated import receipt listing
func (h *ImportReceiptHandler) List(c *gin.Context) {
	var filter receiptapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	receipts, total, err := h.importService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, receipts, total, filter.Page, filter.PageSize)
}

// GetByID returns an import receipt by ID
func (h *ImportReceiptHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	rec, err := h.importService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rec)
}

// UpdateStatus transitions an import receipt to the requested status.
// Completing a receipt atomically increases warehouse stock.
func (h *ImportReceiptHandler) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	var req receiptapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rec, err := h.importService.UpdateStatus(c.Request.Context(), id, receipt.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rec)
}
