package procurement

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPOHeader() PurchaseOrderHeader {
	return PurchaseOrderHeader{
		PONumber:        "PO-2024-001",
		Date:            time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		PODelivery:      "Site Store",
		RequisitionType: "Regular",
		Supplier:        "Acme Supplies",
		Store:           "Central",
		Payment:         "30 days",
		Purchaser:       "J. Rao",
	}
}

func validPORow() PurchaseOrderRow {
	return PurchaseOrderRow{
		Department: "Stores",
		Category:   "Cement",
		Name:       "OPC 53",
		UOM:        "Bag",
		Quantity:   decimal.NewFromInt(3),
		Rate:       decimal.RequireFromString("10.005"),
	}
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("derives row financials", func(t *testing.T) {
		po, err := NewPurchaseOrder(uuid.New(), validPOHeader(), []PurchaseOrderRow{validPORow()})
		require.NoError(t, err)

		row := po.Rows[0]
		assert.True(t, row.ExcludingTaxAmount.Equal(decimal.RequireFromString("30.02")), "got %s", row.ExcludingTaxAmount)
		assert.True(t, row.GSTPercent.Equal(decimal.NewFromInt(18)))
		assert.True(t, row.GSTAmount.Equal(decimal.RequireFromString("5.40")), "got %s", row.GSTAmount)
		assert.True(t, row.TotalAmount.Equal(decimal.RequireFromString("35.42")), "got %s", row.TotalAmount)
	})

	t.Run("explicit excludingTaxAmount is kept", func(t *testing.T) {
		row := validPORow()
		row.ExcludingTaxAmount = decimal.NewFromInt(100)
		po, err := NewPurchaseOrder(uuid.New(), validPOHeader(), []PurchaseOrderRow{row})
		require.NoError(t, err)
		assert.True(t, po.Rows[0].ExcludingTaxAmount.Equal(decimal.NewFromInt(100)))
		assert.True(t, po.Rows[0].GSTAmount.Equal(decimal.NewFromInt(18)))
	})

	t.Run("discount and other charges affect the total", func(t *testing.T) {
		row := validPORow()
		row.ExcludingTaxAmount = decimal.NewFromInt(100)
		row.DiscountAmount = decimal.NewFromInt(10)
		row.OtherChargesAmount = decimal.NewFromInt(5)
		po, err := NewPurchaseOrder(uuid.New(), validPOHeader(), []PurchaseOrderRow{row})
		require.NoError(t, err)
		assert.True(t, po.Rows[0].TotalAmount.Equal(decimal.NewFromInt(113)), "got %s", po.Rows[0].TotalAmount)
	})

	t.Run("missing supplier rejected", func(t *testing.T) {
		header := validPOHeader()
		header.Supplier = ""
		_, err := NewPurchaseOrder(uuid.New(), header, []PurchaseOrderRow{validPORow()})
		require.Error(t, err)
	})
}

func TestPurchaseOrderCapacityLines(t *testing.T) {
	first := validPORow()
	second := validPORow()
	second.Name = "PPC 43"
	second.Quantity = decimal.NewFromInt(20)

	po, err := NewPurchaseOrder(uuid.New(), validPOHeader(), []PurchaseOrderRow{first, second})
	require.NoError(t, err)

	lines := po.CapacityLines()
	require.Len(t, lines, 2)
	assert.Equal(t, "OPC 53", lines[0].Item)
	assert.True(t, lines[0].Capacity.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, "PPC 43", lines[1].Item)
	assert.True(t, lines[1].Capacity.Equal(decimal.NewFromInt(20)))
}

func TestPurchaseOrderTotalAmount(t *testing.T) {
	first := validPORow()
	first.ExcludingTaxAmount = decimal.NewFromInt(100)
	second := validPORow()
	second.Name = "PPC 43"
	second.ExcludingTaxAmount = decimal.NewFromInt(200)

	po, err := NewPurchaseOrder(uuid.New(), validPOHeader(), []PurchaseOrderRow{first, second})
	require.NoError(t, err)
	assert.True(t, po.TotalAmount().Equal(decimal.NewFromInt(354)), "got %s", po.TotalAmount())
}
