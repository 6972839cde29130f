package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	reportapp "github.com/orderdesk/backend/internal/application/report"
)

// DashboardHandler handles dashboard and reporting API endpoints
type DashboardHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(reportService *reportapp.ReportService) *DashboardHandler {
	return &DashboardHandler{reportService: reportService}
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/metrics", h.Metrics)
		dashboard.GET("/profit-summary", h.ProfitSummary)
		dashboard.GET("/unpaid-orders", h.UnpaidOrders)
		dashboard.GET("/sales-over-time", h.SalesOverTime)
		dashboard.GET("/top-products", h.TopProducts)
		dashboard.GET("/order-status-summary", h.StatusSummary)
		dashboard.GET("/monthly-revenue", h.MonthlyRevenue)
		dashboard.GET("/shipment-costs", h.ShipmentCosts)
		dashboard.GET("/shipment-revenue", h.ShipmentRevenue)
	}
}

// Metrics handles GET /dashboard/metrics
func (h *DashboardHandler) Metrics(c *gin.Context) {
	var filter reportapp.DateRangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.reportService.Metrics(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ProfitSummary handles GET /dashboard/profit-summary
func (h *DashboardHandler) ProfitSummary(c *gin.Context) {
	var filter reportapp.DateRangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.reportService.ProfitSummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UnpaidOrders handles GET /dashboard/unpaid-orders
func (h *DashboardHandler) UnpaidOrders(c *gin.Context) {
	resp, err := h.reportService.UnpaidOrders(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SalesOverTime handles GET /dashboard/sales-over-time
func (h *DashboardHandler) SalesOverTime(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 || days > 365 {
		h.BadRequest(c, "days must be between 1 and 365")
		return
	}
	resp, err := h.reportService.SalesOverTime(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// TopProducts handles GET /dashboard/top-products
func (h *DashboardHandler) TopProducts(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		h.BadRequest(c, "limit must be between 1 and 100")
		return
	}
	var filter reportapp.DateRangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.reportService.TopProducts(c.Request.Context(), limit, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// StatusSummary handles GET /dashboard/order-status-summary
func (h *DashboardHandler) StatusSummary(c *gin.Context) {
	var filter reportapp.DateRangeFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	resp, err := h.reportService.StatusSummary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ShipmentCosts handles GET /dashboard/shipment-costs
func (h *DashboardHandler) ShipmentCosts(c *gin.Context) {
	resp, err := h.reportService.ShipmentCosts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ShipmentRevenue handles GET /dashboard/shipment-revenue
func (h *DashboardHandler) ShipmentRevenue(c *gin.Context) {
	resp, err := h.reportService.ShipmentRevenue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// MonthlyRevenue handles GET /dashboard/monthly-revenue
func (h *DashboardHandler) MonthlyRevenue(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", "0"))
	if err != nil || year < 0 {
		h.BadRequest(c, "year must be a positive number")
		return
	}
	resp, err := h.reportService.MonthlyRevenue(c.Request.Context(), year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
