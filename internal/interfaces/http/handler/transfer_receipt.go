package handler

import (
	"github.com/gin-gonic/gin"
	receiptapp "github.com/warehouse/backend/internal/application/receipt"
	"github.com/warehouse/backend/internal/domain/receipt"
)

// TransferReceiptHandler handles transfer receipt endpoints
type TransferReceiptHandler struct {
	BaseHandler
	transferService *receiptapp.TransferService
}

// NewTransferReceiptHandler creates a new TransferReceiptHandler
func NewTransferReceiptHandler(transferService *receiptapp.TransferService) *TransferReceiptHandler {
	return &TransferReceiptHandler{transferService: transferService}
}

// RegisterRoutes registers transfer receipt routes
func (h *TransferReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.Create)
		transfers.GET("", h.List)
		transfers.GET("/:id", h.GetByID)
		transfers.PATCH("/:id/status", h.UpdateStatus)
	}
}

// Create creates a new transfer receipt in pending status
func (h *TransferReceiptHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req receiptapp.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rec, err := h.transferService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, rec)
}

// List returns a paginated transfer receipt listing
func (h *TransferReceiptHandler) List(c *gin.Context) {
	var filter receiptapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	receipts, total, err := h.transferService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, receipts, total, filter.Page, filter.PageSize)
}

// GetByID returns a transfer receipt by ID
func (h *TransferReceiptHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	rec, err := h.transferService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rec)
}

// UpdateStatus transitions a transfer receipt to the requested status.
// Transfers may complete directly from pending; completion moves stock out
// of the source warehouse and into the destination atomically.
func (h *TransferReceiptHandler) UpdateStatus(c *gin.Context) {
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

	rec, err := h.transferService.UpdateStatus(c.Request.Context(), id, receipt.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rec)
}
