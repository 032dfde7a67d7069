package handler

import (
	"github.com/gin-gonic/gin"

	appProcurement "github.com/procure/backend/internal/application/procurement"
	appReport "github.com/procure/backend/internal/application/report"
	"github.com/procure/backend/internal/interfaces/http/dto"
)

// GRNReturnHandler handles GRN return endpoints
type GRNReturnHandler struct {
	BaseHandler
	service *appProcurement.GRNReturnService
	reports appReport.Adapter
}

// NewGRNReturnHandler creates a new GRN return handler
func NewGRNReturnHandler(service *appProcurement.GRNReturnService, reports appReport.Adapter) *GRNReturnHandler {
	return &GRNReturnHandler{service: service, reports: reports}
}

// RegisterRoutes registers GRN return routes on the API group
func (h *GRNReturnHandler) RegisterRoutes(rg *gin.RouterGroup) {
	returns := rg.Group("/grn-returns")
	{
		returns.POST("", h.Create)
		returns.GET("", h.List)
		returns.GET("/report", h.Report)
		returns.GET("/:grnrNumber", h.Get)
		returns.PUT("/:grnrNumber", h.Update)
		returns.DELETE("/:grnrNumber", h.Delete)
	}
}

// Create records a new GRN return. Returned quantities are checked
// against the remaining balance of the referenced GRN.
func (h *GRNReturnHandler) Create(c *gin.Context) {
	var req appProcurement.GRNReturnRequest
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

// List returns the GRN returns visible to the caller. Supports search
// on the GRNR and GRN numbers, a grn_number filter and a
// start_date/end_date range on the return date.
func (h *GRNReturnHandler) List(c *gin.Context) {
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

	page, err := h.service.List(c.Request.Context(), actor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one GRN return by its GRNR number
func (h *GRNReturnHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), actor(c), c.Param("grnrNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update replaces a GRN return's header and rows wholesale, revalidating
// returned quantities against the GRN balance.
func (h *GRNReturnHandler) Update(c *gin.Context) {
	var req appProcurement.GRNReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), actor(c), c.Param("grnrNumber"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a GRN return
func (h *GRNReturnHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actor(c), c.Param("grnrNumber")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Report renders the GRN return register for a date range as a download
func (h *GRNReturnHandler) Report(c *gin.Context) {
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
