// Package report renders document datasets as XLSX workbooks.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/procure/backend/internal/application/report"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExcelAdapter renders datasets into XLSX files
type ExcelAdapter struct {
	logger *zap.Logger
}

// NewExcelAdapter creates an XLSX report adapter
func NewExcelAdapter(logger *zap.Logger) *ExcelAdapter {
	return &ExcelAdapter{logger: logger}
}

var _ report.Adapter = (*ExcelAdapter)(nil)

// Render writes the dataset into a single-sheet workbook: one header row
// from the column titles, one row per dataset row, columns in dataset order.
func (a *ExcelAdapter) Render(_ context.Context, ds report.Dataset) (*report.Result, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	for col, c := range ds.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, c.Title); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range ds.Rows {
		for col, c := range ds.Columns {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, cellValue(row[c.Key])); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		a.logger.Error("Failed to write workbook", zap.Error(err))
		return nil, err
	}

	a.logger.Info("Report rendered",
		zap.String("label", ds.Label),
		zap.Int("rows", len(ds.Rows)))

	return &report.Result{
		FileName:    fileName(ds),
		ContentType: xlsxContentType,
		Content:     buf.Bytes(),
	}, nil
}

// cellValue converts dataset values into types excelize serializes natively
func cellValue(v any) any {
	switch tv := v.(type) {
	case decimal.Decimal:
		f, _ := tv.Float64()
		return f
	case time.Time:
		return shared.FormatDocDate(tv)
	default:
		return v
	}
}

func fileName(ds report.Dataset) string {
	name := strings.ToLower(strings.ReplaceAll(ds.Label, " ", "-"))
	if !ds.FromDate.IsZero() || !ds.ToDate.IsZero() {
		from, to := "start", "now"
		if !ds.FromDate.IsZero() {
			from = shared.FormatDocDate(ds.FromDate)
		}
		if !ds.ToDate.IsZero() {
			to = shared.FormatDocDate(ds.ToDate)
		}
		return fmt.Sprintf("%s-%s-to-%s.xlsx", name, from, to)
	}
	return name + ".xlsx"
}
