package procurement

import (
	"context"
	"testing"

	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseOrderReportDateRange(t *testing.T) {
	poService, _ := newGRNFixture(t)
	actor := ownerActor()
	ctx := context.Background()

	early := poRequest("PO-1", 100)
	early.Date = "15-03-2024"
	_, err := poService.Create(ctx, actor, early)
	require.NoError(t, err)

	late := poRequest("PO-2", 50)
	late.Date = "20-05-2024"
	_, err = poService.Create(ctx, actor, late)
	require.NoError(t, err)

	from, err := shared.ParseDocDate("01-04-2024")
	require.NoError(t, err)

	ds, err := poService.Report(ctx, actor, ReportQuery{FromDate: from})
	require.NoError(t, err)

	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "PO-2", ds.Rows[0]["poNumber"])
	assert.Equal(t, "Purchase Order Report", ds.Label)
}

func TestPurchaseOrderReportSortAndColumns(t *testing.T) {
	poService, _ := newGRNFixture(t)
	actor := ownerActor()
	ctx := context.Background()

	for _, number := range []string{"PO-2", "PO-1", "PO-3"} {
		req := poRequest(number, 10)
		_, err := poService.Create(ctx, actor, req)
		require.NoError(t, err)
	}

	ds, err := poService.Report(ctx, actor, ReportQuery{
		SortBy:  "poNumber",
		Order:   "desc",
		Columns: []string{"poNumber", "quantity"},
	})
	require.NoError(t, err)

	require.Len(t, ds.Rows, 3)
	assert.Equal(t, "PO-3", ds.Rows[0]["poNumber"])
	assert.Equal(t, "PO-1", ds.Rows[2]["poNumber"])

	require.Len(t, ds.Columns, 2)
	assert.Equal(t, "poNumber", ds.Columns[0].Key)

	// Pruned rows carry only the selected keys.
	_, hasSupplier := ds.Rows[0]["supplier"]
	assert.False(t, hasSupplier)
	qty, ok := ds.Rows[0]["quantity"].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, qty.Equal(decimal.NewFromInt(10)))
}

func TestReportRejectsUnknownColumns(t *testing.T) {
	poService, _ := newGRNFixture(t)
	actor := ownerActor()
	ctx := context.Background()

	_, err := poService.Report(ctx, actor, ReportQuery{SortBy: "nope"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_FORMAT", domainErr.Code)

	_, err = poService.Report(ctx, actor, ReportQuery{Columns: []string{"nope"}})
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_FORMAT", domainErr.Code)
}

func TestReportScopedToOwner(t *testing.T) {
	poService, _ := newGRNFixture(t)
	ctx := context.Background()

	mine := ownerActor()
	other := ownerActor()
	admin := adminActor()

	_, err := poService.Create(ctx, mine, poRequest("PO-MINE", 10))
	require.NoError(t, err)
	_, err = poService.Create(ctx, other, poRequest("PO-OTHER", 10))
	require.NoError(t, err)

	ds, err := poService.Report(ctx, mine, ReportQuery{})
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "PO-MINE", ds.Rows[0]["poNumber"])

	all, err := poService.Report(ctx, admin, ReportQuery{})
	require.NoError(t, err)
	assert.Len(t, all.Rows, 2)
}

func TestGRNReportFlattensRows(t *testing.T) {
	poService, grnService := newGRNFixture(t)
	actor := ownerActor()
	ctx := context.Background()

	_, err := poService.Create(ctx, actor, poRequest("PO-1", 100))
	require.NoError(t, err)

	req := grnRequest("GRN-1", "PO-1", 40)
	req.Rows = append(req.Rows, GRNRowInput{
		PONo:        "PO-1",
		Department:  "Stores",
		Category:    "Cement",
		Name:        "OPC 53",
		Unit:        "Bag",
		ReceivedQty: decimal.NewFromInt(20),
	})
	_, err = grnService.Create(ctx, actor, req)
	require.NoError(t, err)

	ds, err := grnService.Report(ctx, actor, ReportQuery{})
	require.NoError(t, err)

	// One dataset row per document row.
	require.Len(t, ds.Rows, 2)
	for _, row := range ds.Rows {
		assert.Equal(t, "GRN-1", row["grnNumber"])
		assert.Equal(t, "PO-1", row["poNo"])
	}
}
