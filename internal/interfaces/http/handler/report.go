package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	appProcurement "github.com/procure/backend/internal/application/procurement"
	appReport "github.com/procure/backend/internal/application/report"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/procure/backend/internal/interfaces/http/dto"
)

// toReportQuery converts report query parameters into a report query.
// Dates are DD-MM-YYYY; a missing date leaves that end of the range open.
func toReportQuery(req dto.ReportRequest) (appProcurement.ReportQuery, error) {
	q := appProcurement.ReportQuery{
		SortBy: req.SortBy,
		Order:  req.Order,
	}
	if req.FromDate != "" {
		from, err := shared.ParseDocDate(req.FromDate)
		if err != nil {
			return q, shared.NewDomainError(dto.ErrCodeInvalidFormat, "from_date must be DD-MM-YYYY")
		}
		q.FromDate = from
	}
	if req.ToDate != "" {
		to, err := shared.ParseDocDate(req.ToDate)
		if err != nil {
			return q, shared.NewDomainError(dto.ErrCodeInvalidFormat, "to_date must be DD-MM-YYYY")
		}
		q.ToDate = to
	}
	if req.Columns != "" {
		for _, col := range strings.Split(req.Columns, ",") {
			if col = strings.TrimSpace(col); col != "" {
				q.Columns = append(q.Columns, col)
			}
		}
	}
	return q, nil
}

// serveReport renders the dataset and streams it as a file download
func (h *BaseHandler) serveReport(c *gin.Context, adapter appReport.Adapter, ds *appReport.Dataset) {
	result, err := adapter.Render(c.Request.Context(), *ds)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
