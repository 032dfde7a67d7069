package handler

import (
	"github.com/gin-gonic/gin"

	appProcurement "github.com/procure/backend/internal/application/procurement"
	appReport "github.com/procure/backend/internal/application/report"
	"github.com/procure/backend/internal/interfaces/http/dto"
)

// RequisitionHandler handles demand requisition endpoints
type RequisitionHandler struct {
	BaseHandler
	service *appProcurement.RequisitionService
	reports appReport.Adapter
}

// NewRequisitionHandler creates a new requisition handler
func NewRequisitionHandler(service *appProcurement.RequisitionService, reports appReport.Adapter) *RequisitionHandler {
	return &RequisitionHandler{service: service, reports: reports}
}

// RegisterRoutes registers requisition routes on the API group
func (h *RequisitionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requisitions := rg.Group("/requisitions")
	{
		requisitions.POST("", h.Create)
		requisitions.GET("", h.List)
		requisitions.GET("/report", h.Report)
		requisitions.GET("/:drNumber", h.Get)
		requisitions.PUT("/:drNumber", h.Update)
		requisitions.DELETE("/:drNumber", h.Delete)
	}
}

// Create records a new requisition
func (h *RequisitionHandler) Create(c *gin.Context) {
	var req appProcurement.RequisitionRequest
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

// List returns the requisitions visible to the caller. Supports search
// on the DR number and department, a requisition_type filter and a
// start_date/end_date range on the document date.
func (h *RequisitionHandler) List(c *gin.Context) {
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
	if v := c.Query("requisition_type"); v != "" {
		filter.Filters["requisition_type"] = v
	}

	page, err := h.service.List(c.Request.Context(), actor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns one requisition by its DR number
func (h *RequisitionHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), actor(c), c.Param("drNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update replaces a requisition's header and items wholesale
func (h *RequisitionHandler) Update(c *gin.Context) {
	var req appProcurement.RequisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), actor(c), c.Param("drNumber"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a requisition
func (h *RequisitionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actor(c), c.Param("drNumber")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Report renders the requisition register for a date range as a download
func (h *RequisitionHandler) Report(c *gin.Context) {
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
