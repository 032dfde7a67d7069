package handler

import (
	"github.com/gin-gonic/gin"

	appProcurement "github.com/procure/backend/internal/application/procurement"
	appReport "github.com/procure/backend/internal/application/report"
	"github.com/procure/backend/internal/interfaces/http/dto"
)

// PurchaseOrderHandler handles purchase order endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	service *appProcurement.PurchaseOrderService
	reports appReport.Adapter
}

// NewPurchaseOrderHandler creates a new purchase order handler
func NewPurchaseOrderHandler(service *appProcurement.PurchaseOrderService, reports appReport.Adapter) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{service: service, reports: reports}
}

// RegisterRoutes registers purchase order routes on the API group
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/purchase-orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/report", h.Report)
		orders.GET("/:poNumber", h.Get)
		orders.PUT("/:poNumber", h.Update)
		orders.DELETE("/:poNumber", h.Delete)
	}
}

// Create records a new purchase order
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req appProcurement.PurchaseOrderRequest
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

// List returns the purchase orders visible to the caller. Supports
// search on the PO number and supplier, a supplier filter and a
// start_date/end_date range on the document date.
func (h *PurchaseOrderHandler) List(c *gin.Context) {
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

// Get returns one purchase order by its PO number
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	resp, err := h.service.Get(c.Request.Context(), actor(c), c.Param("poNumber"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update replaces a purchase order's header and rows wholesale
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	var req appProcurement.PurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), actor(c), c.Param("poNumber"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a purchase order
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actor(c), c.Param("poNumber")); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Report renders the purchase order register for a date range as a download
func (h *PurchaseOrderHandler) Report(c *gin.Context) {
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
