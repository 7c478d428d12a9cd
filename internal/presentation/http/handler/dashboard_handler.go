package handler

import (
	"time"

	"github.com/dukahub/dukapos-api/internal/application/service"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/request"
	"github.com/dukahub/dukapos-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard and report HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns the overview figures for today
func (h *DashboardHandler) Stats(c *gin.Context) {
	actor, ok := CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// SalesReport aggregates receipts per day over a date range
func (h *DashboardHandler) SalesReport(c *gin.Context) {
	actor, ok := CurrentActor(c)
	if !ok {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "from and to dates are required")
		return
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}

	// The range is inclusive of the to date as users expect from a report
	// picker, so extend it by one day before the half-open query
	report, err := h.dashboardService.GetSalesReport(c.Request.Context(), actor, from, to.AddDate(0, 0, 1))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales report retrieved successfully", report)
}
