package handler

import (
	"github.com/gin-gonic/gin"

	appProcurement "github.com/procure/backend/internal/application/procurement"
	appReport "github.com/procure/backend/internal/application/report"
	"github.com/procure/backend/internal/interfaces/http/dto"
)

// IssueHandler handles material issue endpoints. Issues are addressed
// by their demand number.
type IssueHandler struct {
	BaseHandler
	service *appProcurement.IssueService
	reports appReport.Adapter
}

// NewIssueHandler creates a new issue handler
func NewIssueHandler(service *appProcurement.IssueService, reports appReport.Adapter) *IssueHandler {
	return &IssueHandler{service: service, reports: reports}
}

// RegisterRoutes registers issue routes on the API group
func (h *IssueHandler) RegisterRoutes(rg *gin.RouterGroup) {
	issues := rg.Group("/issues")
	{
		issues.POST("", h.Create)
		issues.GET("", h.List)
		issues.GET("/report", h.Report)
		issues.GET("/:demandNo", h.Get)
		issues.PUT("/:demandNo", h.Update)
		issues.DELETE("/:demandNo", h.Delete)
	}
}

// Create records a new issue. Issued quantities are checked against the
// remaining balance of the referenced GRN.
func (h *IssueHandler) Create(c *gin.Context) {
	var req appProcurement.IssueRequest
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

// List returns the issues visible to the caller. Supports search on the
// demand, issue and GRN numbers, grn_number and issue_to_department
// filters and a start_date/end_date range on the issue date.
func (h *IssueHandler) List(c *gin.Context) {
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
	if v := c.Query("grn_number"); v != "" {
		filter.Filters["grn_number"] = v
	}
	if v := c.Query("issue_to_department"); v != "" {
		filter.Filters["issue_to_department"] = v
	}

	page, err := h.service.List(c.Request.Context(), actor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one issue by its demand number
func (h *IssueHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), actor(c), c.Param("demandNo"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update replaces an issue's header and rows wholesale, revalidating
// issued quantities against the GRN balance.
func (h *IssueHandler) Update(c *gin.Context) {
	var req appProcurement.IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), actor(c), c.Param("demandNo"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes an issue
func (h *IssueHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actor(c), c.Param("demandNo")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Report renders the issue register for a date range as a download
func (h *IssueHandler) Report(c *gin.Context) {
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
