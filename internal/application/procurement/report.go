package procurement

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/procure/backend/internal/application/report"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReportQuery bounds and shapes a report dataset. A zero FromDate/ToDate
// leaves that end of the range open. Columns selects a subset of the
// document's column set; empty means all columns.
type ReportQuery struct {
	FromDate time.Time
	ToDate   time.Time
	SortBy   string
	Order    string
	Columns  []string
}

func (q ReportQuery) inRange(date time.Time) bool {
	if !q.FromDate.IsZero() && date.Before(q.FromDate) {
		return false
	}
	if !q.ToDate.IsZero() && date.After(q.ToDate) {
		return false
	}
	return true
}

// reportFilter returns a scope filter wide enough to cover the full
// document set. Reports are bounded by date range, not by page.
func reportFilter() shared.Filter {
	f := shared.DefaultFilter()
	f.Page = 1
	f.PageSize = 100000
	return f
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case decimal.Decimal:
		if bv, ok := b.(decimal.Decimal); ok {
			return av.Cmp(bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			switch {
			case av.Before(bv):
				return -1
			case av.After(bv):
				return 1
			}
			return 0
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(strings.ToLower(av), strings.ToLower(bv))
		}
	}
	return 0
}

// finishDataset sorts and prunes the flattened rows per the query
func finishDataset(label string, columns []report.Column, rows []map[string]any, q ReportQuery) (*report.Dataset, error) {
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c.Key] = true
	}

	if q.SortBy != "" {
		if !known[q.SortBy] {
			return nil, shared.NewDomainErrorf("INVALID_FORMAT", "Unknown sort column %q", q.SortBy)
		}
		desc := strings.EqualFold(q.Order, "desc")
		sort.SliceStable(rows, func(i, j int) bool {
			c := compareValues(rows[i][q.SortBy], rows[j][q.SortBy])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	if len(q.Columns) > 0 {
		selected := make([]report.Column, 0, len(q.Columns))
		for _, key := range q.Columns {
			if !known[key] {
				return nil, shared.NewDomainErrorf("INVALID_FORMAT", "Unknown column %q", key)
			}
			for _, c := range columns {
				if c.Key == key {
					selected = append(selected, c)
				}
			}
		}
		pruned := make([]map[string]any, len(rows))
		for i, row := range rows {
			p := make(map[string]any, len(selected))
			for _, c := range selected {
				p[c.Key] = row[c.Key]
			}
			pruned[i] = p
		}
		columns, rows = selected, pruned
	}

	return &report.Dataset{
		Label:    label,
		FromDate: q.FromDate,
		ToDate:   q.ToDate,
		Columns:  columns,
		Rows:     rows,
	}, nil
}

var requisitionReportColumns = []report.Column{
	{Key: "drNumber", Title: "DR Number"},
	{Key: "date", Title: "Date"},
	{Key: "department", Title: "Department"},
	{Key: "requisitionType", Title: "Requisition Type"},
	{Key: "level3ItemCategory", Title: "Item Category"},
	{Key: "itemName", Title: "Item Name"},
	{Key: "uom", Title: "UOM"},
	{Key: "quantity", Title: "Quantity"},
	{Key: "rate", Title: "Rate"},
	{Key: "amount", Title: "Amount"},
	{Key: "remarks", Title: "Remarks"},
}

// Report builds the requisition dataset for the date range, one row per
// line item, within the actor's visibility scope.
func (s *RequisitionService) Report(ctx context.Context, actor Actor, q ReportQuery) (*report.Dataset, error) {
	scoped, err := scopeFilter(actor, reportFilter())
	if err != nil {
		return nil, err
	}
	docs, err := s.repo.FindAll(ctx, scoped)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	for i := range docs {
		d := &docs[i]
		if !q.inRange(d.Date) {
			continue
		}
		for _, item := range d.Items {
			rows = append(rows, map[string]any{
				"drNumber":           d.DRNumber,
				"date":               d.Date,
				"department":         d.Department,
				"requisitionType":    d.RequisitionType,
				"level3ItemCategory": item.Level3ItemCategory,
				"itemName":           item.ItemName,
				"uom":                item.UOM,
				"quantity":           item.Quantity,
				"rate":               item.Rate,
				"amount":             item.Amount,
				"remarks":            item.Remarks,
			})
		}
	}
	return finishDataset("Requisition Report", requisitionReportColumns, rows, q)
}

var purchaseOrderReportColumns = []report.Column{
	{Key: "poNumber", Title: "PO Number"},
	{Key: "date", Title: "Date"},
	{Key: "supplier", Title: "Supplier"},
	{Key: "store", Title: "Store"},
	{Key: "requisition", Title: "Requisition"},
	{Key: "department", Title: "Department"},
	{Key: "category", Title: "Category"},
	{Key: "name", Title: "Item Name"},
	{Key: "uom", Title: "UOM"},
	{Key: "quantity", Title: "Quantity"},
	{Key: "rate", Title: "Rate"},
	{Key: "excludingTaxAmount", Title: "Amount Excl. Tax"},
	{Key: "gstPercent", Title: "GST %"},
	{Key: "gstAmount", Title: "GST Amount"},
	{Key: "discountAmount", Title: "Discount"},
	{Key: "otherChargesAmount", Title: "Other Charges"},
	{Key: "totalAmount", Title: "Total Amount"},
}

// Report builds the purchase order dataset for the date range
func (s *PurchaseOrderService) Report(ctx context.Context, actor Actor, q ReportQuery) (*report.Dataset, error) {
	scoped, err := scopeFilter(actor, reportFilter())
	if err != nil {
		return nil, err
	}
	docs, err := s.repo.FindAll(ctx, scoped)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	for i := range docs {
		d := &docs[i]
		if !q.inRange(d.Date) {
			continue
		}
		for _, r := range d.Rows {
			rows = append(rows, map[string]any{
				"poNumber":           d.PONumber,
				"date":               d.Date,
				"supplier":           d.Supplier,
				"store":              d.Store,
				"requisition":        r.Requisition,
				"department":         r.Department,
				"category":           r.Category,
				"name":               r.Name,
				"uom":                r.UOM,
				"quantity":           r.Quantity,
				"rate":               r.Rate,
				"excludingTaxAmount": r.ExcludingTaxAmount,
				"gstPercent":         r.GSTPercent,
				"gstAmount":          r.GSTAmount,
				"discountAmount":     r.DiscountAmount,
				"otherChargesAmount": r.OtherChargesAmount,
				"totalAmount":        r.TotalAmount,
			})
		}
	}
	return finishDataset("Purchase Order Report", purchaseOrderReportColumns, rows, q)
}

var grnReportColumns = []report.Column{
	{Key: "grnNumber", Title: "GRN Number"},
	{Key: "date", Title: "Date"},
	{Key: "supplier", Title: "Supplier"},
	{Key: "supplierChallanNumber", Title: "Challan Number"},
	{Key: "inwardNumber", Title: "Inward Number"},
	{Key: "poNo", Title: "PO Number"},
	{Key: "department", Title: "Department"},
	{Key: "category", Title: "Category"},
	{Key: "name", Title: "Item Name"},
	{Key: "unit", Title: "Unit"},
	{Key: "poQty", Title: "PO Qty"},
	{Key: "receivedQty", Title: "Received Qty"},
}

// Report builds the goods receipt dataset for the date range
func (s *GRNService) Report(ctx context.Context, actor Actor, q ReportQuery) (*report.Dataset, error) {
	scoped, err := scopeFilter(actor, reportFilter())
	if err != nil {
		return nil, err
	}
	docs, err := s.repo.FindAll(ctx, scoped)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	for i := range docs {
		d := &docs[i]
		if !q.inRange(d.Date) {
			continue
		}
		for _, r := range d.Rows {
			rows = append(rows, map[string]any{
				"grnNumber":             d.GRNNumber,
				"date":                  d.Date,
				"supplier":              d.Supplier,
				"supplierChallanNumber": d.SupplierChallanNumber,
				"inwardNumber":          d.InwardNumber,
				"poNo":                  r.PONo,
				"department":            r.Department,
				"category":              r.Category,
				"name":                  r.Name,
				"unit":                  r.Unit,
				"poQty":                 r.POQty,
				"receivedQty":           r.ReceivedQty,
			})
		}
	}
	return finishDataset("GRN Report", grnReportColumns, rows, q)
}

var grnReturnReportColumns = []report.Column{
	{Key: "grnrNumber", Title: "GRN Return Number"},
	{Key: "grnrDate", Title: "Return Date"},
	{Key: "grnNumber", Title: "GRN Number"},
	{Key: "category", Title: "Category"},
	{Key: "name", Title: "Item Name"},
	{Key: "unit", Title: "Unit"},
	{Key: "grnQty", Title: "GRN Qty"},
	{Key: "returnQty", Title: "Return Qty"},
}

// Report builds the GRN return dataset for the date range
func (s *GRNReturnService) Report(ctx context.Context, actor Actor, q ReportQuery) (*report.Dataset, error) {
	scoped, err := scopeFilter(actor, reportFilter())
	if err != nil {
		return nil, err
	}
	docs, err := s.repo.FindAll(ctx, scoped)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	for i := range docs {
		d := &docs[i]
		if !q.inRange(d.GRNRDate) {
			continue
		}
		for _, r := range d.Rows {
			rows = append(rows, map[string]any{
				"grnrNumber": d.GRNRNumber,
				"grnrDate":   d.GRNRDate,
				"grnNumber":  d.GRNNumber,
				"category":   r.Category,
				"name":       r.Name,
				"unit":       r.Unit,
				"grnQty":     r.GRNQty,
				"returnQty":  r.ReturnQty,
			})
		}
	}
	return finishDataset("GRN Return Report", grnReturnReportColumns, rows, q)
}

var issueReportColumns = []report.Column{
	{Key: "demandNo", Title: "Demand Number"},
	{Key: "issueNumber", Title: "Issue Number"},
	{Key: "issueDate", Title: "Issue Date"},
	{Key: "grnNumber", Title: "GRN Number"},
	{Key: "store", Title: "Store"},
	{Key: "issueToUnit", Title: "Issue To Unit"},
	{Key: "issueToDepartment", Title: "Issue To Department"},
	{Key: "level3ItemCategory", Title: "Item Category"},
	{Key: "itemName", Title: "Item Name"},
	{Key: "uom", Title: "UOM"},
	{Key: "grnQty", Title: "GRN Qty"},
	{Key: "issueQty", Title: "Issue Qty"},
}

// Report builds the issue dataset for the date range
func (s *IssueService) Report(ctx context.Context, actor Actor, q ReportQuery) (*report.Dataset, error) {
	scoped, err := scopeFilter(actor, reportFilter())
	if err != nil {
		return nil, err
	}
	docs, err := s.repo.FindAll(ctx, scoped)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	for i := range docs {
		d := &docs[i]
		if !q.inRange(d.IssueDate) {
			continue
		}
		for _, r := range d.Rows {
			rows = append(rows, map[string]any{
				"demandNo":           d.DemandNo,
				"issueNumber":        d.IssueNumber,
				"issueDate":          d.IssueDate,
				"grnNumber":          d.GRNNumber,
				"store":              d.Store,
				"issueToUnit":        d.IssueToUnit,
				"issueToDepartment":  d.IssueToDepartment,
				"level3ItemCategory": r.Level3ItemCategory,
				"itemName":           r.ItemName,
				"uom":                r.UOM,
				"grnQty":             r.GRNQty,
				"issueQty":           r.IssueQty,
			})
		}
	}
	return finishDataset("Issue Report", issueReportColumns, rows, q)
}

var issueReturnReportColumns = []report.Column{
	{Key: "irNumber", Title: "Issue Return Number"},
	{Key: "irDate", Title: "Return Date"},
	{Key: "drNumber", Title: "Demand Number"},
	{Key: "level3ItemCategory", Title: "Item Category"},
	{Key: "itemName", Title: "Item Name"},
	{Key: "unit", Title: "Unit"},
	{Key: "issueQty", Title: "Issue Qty"},
	{Key: "returnQty", Title: "Return Qty"},
}

// Report builds the issue return dataset for the date range
func (s *IssueReturnService) Report(ctx context.Context, actor Actor, q ReportQuery) (*report.Dataset, error) {
	scoped, err := scopeFilter(actor, reportFilter())
	if err != nil {
		return nil, err
	}
	docs, err := s.repo.FindAll(ctx, scoped)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	for i := range docs {
		d := &docs[i]
		if !q.inRange(d.IRDate) {
			continue
		}
		for _, r := range d.Rows {
			rows = append(rows, map[string]any{
				"irNumber":           d.IRNumber,
				"irDate":             d.IRDate,
				"drNumber":           d.DRNumber,
				"level3ItemCategory": r.Level3ItemCategory,
				"itemName":           r.ItemName,
				"unit":               r.Unit,
				"issueQty":           r.IssueQty,
				"returnQty":          r.ReturnQty,
			})
		}
	}
	return finishDataset("Issue Return Report", issueReturnReportColumns, rows, q)
}
