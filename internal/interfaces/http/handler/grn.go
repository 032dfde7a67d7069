package handler

import (
	"github.com/gin-gonic/gin"

	appProcurement "github.com/procure/backend/internal/application/procurement"
	appReport "github.com/procure/backend/internal/application/report"
	"github.com/procure/backend/internal/interfaces/http/dto"
)

// GRNHandler handles goods received note endpoints
type GRNHandler struct {
	BaseHandler
	service *appProcurement.GRNService
	reports appReport.Adapter
}

// NewGRNHandler creates a new GRN handler
func NewGRNHandler(service *appProcurement.GRNService, reports appReport.Adapter) *GRNHandler {
	return &GRNHandler{service: service, reports: reports}
}

// RegisterRoutes registers GRN routes on the API group
func (h *GRNHandler) RegisterRoutes(rg *gin.RouterGroup) {
	grns := rg.Group("/grns")
	{
		grns.POST("", h.Create)
		grns.GET("", h.List)
		grns.GET("/report", h.Report)
		grns.GET("/:grnNumber", h.Get)
		grns.PUT("/:grnNumber", h.Update)
		grns.DELETE("/:grnNumber", h.Delete)
	}
}

// Create records a new GRN. Received quantities are checked against the
// remaining balance of the referenced purchase orders.
func (h *GRNHandler) Create(c *gin.Context) {
	var req appProcurement.GRNRequest
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

// List returns the GRNs visible to the caller. Supports search on the
// GRN number and supplier, a supplier filter and a start_date/end_date
// range on the document date.
func (h *GRNHandler) List(c *gin.Context) {
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
	if v := c.Query("supplier"); v != "" {
		filter.Filters["supplier"] = v
	}

	page, err := h.service.List(c.Request.Context(), actor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one GRN by its number
func (h *GRNHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), actor(c), c.Param("grnNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update replaces a GRN's header and rows wholesale, revalidating
// received quantities against purchase order balances.
func (h *GRNHandler) Update(c *gin.Context) {
	var req appProcurement.GRNRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), actor(c), c.Param("grnNumber"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a GRN
func (h *GRNHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actor(c), c.Param("grnNumber")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Report renders the GRN register for a date range as a download
func (h *GRNHandler) Report(c *gin.Context) {
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
