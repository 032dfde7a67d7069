package ledger

import (
	"github.com/shopspring/decimal"
)

// GSTPercent is the fixed GST rate applied to every purchase order row
var GSTPercent = decimal.NewFromInt(18)

var oneHundred = decimal.NewFromInt(100)

// RowFinancials carries the monetary fields of a purchase order row.
// Zero values stand in for missing or unparseable inputs.
type RowFinancials struct {
	Quantity           decimal.Decimal
	Rate               decimal.Decimal
	ExcludingTaxAmount decimal.Decimal
	GSTPercent         decimal.Decimal
	GSTAmount          decimal.Decimal
	DiscountAmount     decimal.Decimal
	OtherCharges       decimal.Decimal
	TotalAmount        decimal.Decimal
}

// ComputeRowFinancials fills in the derived monetary fields of a row:
//
//	excludingTaxAmount = round2(rate * quantity)   (when not supplied)
//	gstAmount          = round2(excludingTaxAmount * 18 / 100)
//	totalAmount        = round2(excludingTaxAmount + gstAmount - discount + otherCharges)
//
// All rounding is to 2 decimal places, half away from zero. The function is
// idempotent: applying it to its own output yields the same output.
func ComputeRowFinancials(row RowFinancials) RowFinancials {
	excl := row.ExcludingTaxAmount
	if excl.IsZero() {
		excl = row.Rate.Mul(row.Quantity)
	}
	excl = excl.Round(2)

	gst := excl.Mul(GSTPercent).Div(oneHundred).Round(2)
	total := excl.Add(gst).Sub(row.DiscountAmount).Add(row.OtherCharges).Round(2)

	row.ExcludingTaxAmount = excl
	row.GSTPercent = GSTPercent
	row.GSTAmount = gst
	row.TotalAmount = total
	return row
}
