package handler

import (
	"github.com/gin-gonic/gin"

	appProcurement "github.com/procure/backend/internal/application/procurement"
	appReport "github.com/procure/backend/internal/application/report"
	"github.com/procure/backend/internal/interfaces/http/dto"
)

// IssueReturnHandler handles issue return endpoints
type IssueReturnHandler struct {
	BaseHandler
	service *appProcurement.IssueReturnService
	reports appReport.Adapter
}

// NewIssueReturnHandler creates a new issue return handler
func NewIssueReturnHandler(service *appProcurement.IssueReturnService, reports appReport.Adapter) *IssueReturnHandler {
	return &IssueReturnHandler{service: service, reports: reports}
}

// RegisterRoutes registers issue return routes on the API group
func (h *IssueReturnHandler) RegisterRoutes(rg *gin.RouterGroup) {
	returns := rg.Group("/issue-returns")
	{
		returns.POST("", h.Create)
		returns.GET("", h.List)
		returns.GET("/report", h.Report)
		returns.GET("/:irNumber", h.Get)
		returns.PUT("/:irNumber", h.Update)
		returns.DELETE("/:irNumber", h.Delete)
	}
}

// Create records a new issue return. Returned quantities are checked
// against the remaining balance of the referenced issue.
func (h *IssueReturnHandler) Create(c *gin.Context) {
	var req appProcurement.IssueReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List returns the issue returns visible to the caller. Supports search
// on the IR and DR numbers, a dr_number filter and a start_date/end_date
// range on the return date.
func (h *IssueReturnHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	filter, err := dateRangeFilter(c, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if v := c.Query("dr_number"); v != "" {
		filter.Filters["dr_number"] = v
	}

	page, err := h.service.List(c.Request.Context(), actor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one issue return by its IR number
func (h *IssueReturnHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), actor(c), c.Param("irNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update replaces an issue return's header and rows wholesale,
// revalidating returned quantities against the issue balance.
func (h *IssueReturnHandler) Update(c *gin.Context) {
	var req appProcurement.IssueReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), actor(c), c.Param("irNumber"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes an issue return
func (h *IssueReturnHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actor(c), c.Param("irNumber")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Report renders the issue return register for a date range as a download
func (h *IssueReturnHandler) Report(c *gin.Context) {
	var req dto.ReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	query, err := toReportQuery(req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	ds, err := h.service.Report(c.Request.Context(), actor(c), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.serveReport(c, h.reports, ds)
}
