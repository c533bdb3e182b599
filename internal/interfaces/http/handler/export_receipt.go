package handler

import (
	"github.com/gin-gonic/gin"
	receiptapp "github.com/warehouse/backend/internal/application/receipt"
	"github.com/warehouse/backend/internal/domain/receipt"
)

// ExportReceiptHandler handles export receipt endpoints
type ExportReceiptHandler struct {
	BaseHandler
	exportService *receiptapp.ExportService
}

// NewExportReceiptHandler creates a new ExportReceiptHandler
func NewExportReceiptHandler(exportService *receiptapp.ExportService) *ExportReceiptHandler {
	return &ExportReceiptHandler{exportService: exportService}
}

// RegisterRoutes registers export receipt routes
func (h *ExportReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	exports := rg.Group("/exports")
	{
		exports.POST("", h.Create)
		exports.GET("", h.List)
		exports.GET("/:id", h.GetByID)
		exports.PATCH("/:id/status", h.UpdateStatus)
	}
}

// Create creates a new export receipt in pending status
func (h *ExportReceiptHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req receiptapp.CreateExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rec, err := h.exportService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, rec)
}

// List returns a paginated export receipt listing
func (h *ExportReceiptHandler) List(c *gin.Context) {
	var filter receiptapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	receipts, total, err := h.exportService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, receipts, total, filter.Page, filter.PageSize)
}

// GetByID returns an export receipt by ID
func (h *ExportReceiptHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	rec, err := h.exportService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rec)
}

// UpdateStatus transitions an export receipt to the requested status.
// Completing a receipt atomically decreases warehouse stock and fails when
// any line would drive a quantity negative.
func (h *ExportReceiptHandler) UpdateStatus(c *gin.Context) {
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

	rec, err := h.exportService.UpdateStatus(c.Request.Context(), id, receipt.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rec)
}
