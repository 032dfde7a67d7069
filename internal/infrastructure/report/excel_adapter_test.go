package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/procure/backend/internal/application/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func sampleDataset() report.Dataset {
	return report.Dataset{
		Label:    "GRN Report",
		FromDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		ToDate:   time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
		Columns: []report.Column{
			{Key: "grnNumber", Title: "GRN Number"},
			{Key: "date", Title: "Date"},
			{Key: "name", Title: "Item Name"},
			{Key: "receivedQty", Title: "Received Qty"},
		},
		Rows: []map[string]any{
			{
				"grnNumber":   "GRN-1",
				"date":        time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
				"name":        "OPC 53",
				"receivedQty": decimal.NewFromInt(80),
			},
			{
				"grnNumber":   "GRN-2",
				"date":        time.Date(2024, 4, 9, 0, 0, 0, 0, time.UTC),
				"name":        "TMT 12mm",
				"receivedQty": decimal.RequireFromString("12.5"),
			},
		},
	}
}

func TestExcelAdapterRender(t *testing.T) {
	adapter := NewExcelAdapter(zap.NewNop())

	result, err := adapter.Render(context.Background(), sampleDataset())
	require.NoError(t, err)

	assert.Equal(t, "grn-report-01-04-2024-to-30-04-2024.xlsx", result.FileName)
	assert.Contains(t, result.ContentType, "spreadsheetml")
	require.NotEmpty(t, result.Content)

	f, err := excelize.OpenReader(bytes.NewReader(result.Content))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "GRN Number", header)

	number, err := f.GetCellValue("Sheet1", "A2")
	require.NoError(t, err)
	assert.Equal(t, "GRN-1", number)

	date, err := f.GetCellValue("Sheet1", "B3")
	require.NoError(t, err)
	assert.Equal(t, "09-04-2024", date)

	qty, err := f.GetCellValue("Sheet1", "D3")
	require.NoError(t, err)
	assert.Equal(t, "12.5", qty)
}

func TestExcelAdapterEmptyDataset(t *testing.T) {
	adapter := NewExcelAdapter(zap.NewNop())

	result, err := adapter.Render(context.Background(), report.Dataset{
		Label:   "Issue Report",
		Columns: []report.Column{{Key: "demandNo", Title: "Demand Number"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "issue-report.xlsx", result.FileName)

	f, err := excelize.OpenReader(bytes.NewReader(result.Content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Demand Number"}, rows[0])
}
