package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/warehouse/backend/internal/application/report"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	{
		reports.GET("/inventory", h.Inventory)
		reports.GET("/import-export", h.ImportExport)
		reports.GET("/dashboard", h.Dashboard)
	}
}

// Inventory returns the current stock valuation report
func (h *ReportHandler) Inventory(c *gin.Context) {
	report, err := h.reportService.Inventory(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// ImportExport returns completed import/export totals for a date range,
// defaulting to the current month
func (h *ReportHandler) ImportExport(c *gin.Context) {
	var filter reportapp.DateRangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	report, err := h.reportService.ImportExport(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, report)
}

// Dashboard returns headline counts and receipt status breakdowns
func (h *ReportHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dashboard)
}
