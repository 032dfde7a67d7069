package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/ledger"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseOrderRow is a line item on a purchase order. The monetary fields
// are derived by the quantity ledger; callers may leave them zero and have
// them computed, except for an explicitly supplied excludingTaxAmount.
type PurchaseOrderRow struct {
	Requisition        string // optional upstream requisition reference
	Department         string
	Category           string
	Name               string
	UOM                string
	Quantity           decimal.Decimal
	Rate               decimal.Decimal
	ExcludingTaxAmount decimal.Decimal
	GSTPercent         decimal.Decimal
	GSTAmount          decimal.Decimal
	DiscountAmount     decimal.Decimal
	OtherChargesAmount decimal.Decimal
	TotalAmount        decimal.Decimal
	RowRemarks         string
}

func (r PurchaseOrderRow) validate() error {
	if err := requireFields(map[string]string{
		"department": r.Department,
		"category":   r.Category,
		"name":       r.Name,
		"uom":        r.UOM,
	}); err != nil {
		return err
	}
	if r.Quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_FORMAT", "Row quantity must be positive")
	}
	return validateRemark("Row remarks", r.RowRemarks)
}

// computeFinancials fills in the derived monetary fields via the ledger
func (r PurchaseOrderRow) computeFinancials() PurchaseOrderRow {
	fin := ledger.ComputeRowFinancials(ledger.RowFinancials{
		Quantity:           r.Quantity,
		Rate:               r.Rate,
		ExcludingTaxAmount: r.ExcludingTaxAmount,
		DiscountAmount:     r.DiscountAmount,
		OtherCharges:       r.OtherChargesAmount,
	})
	r.ExcludingTaxAmount = fin.ExcludingTaxAmount
	r.GSTPercent = fin.GSTPercent
	r.GSTAmount = fin.GSTAmount
	r.TotalAmount = fin.TotalAmount
	return r
}

// PurchaseOrderHeader holds the descriptive header fields of a purchase order
type PurchaseOrderHeader struct {
	PONumber        string
	Date            time.Time
	PODelivery      string
	RequisitionType string
	Supplier        string
	Store           string
	Payment         string
	Purchaser       string
	Remarks         string
}

func (h PurchaseOrderHeader) validate() error {
	if err := requireFields(map[string]string{
		"poNumber":        h.PONumber,
		"poDelivery":      h.PODelivery,
		"requisitionType": h.RequisitionType,
		"supplier":        h.Supplier,
		"store":           h.Store,
		"payment":         h.Payment,
		"purchaser":       h.Purchaser,
	}); err != nil {
		return err
	}
	if h.Date.IsZero() {
		return shared.NewDomainError("MISSING_FIELD", "date is required")
	}
	return validateRemark("Remarks", h.Remarks)
}

// PurchaseOrder is the supplier order document. Its row quantities are the
// capacity that GRNs consume when goods are received.
type PurchaseOrder struct {
	shared.OwnedAggregateRoot
	PurchaseOrderHeader
	Rows []PurchaseOrderRow
}

// NewPurchaseOrder creates a validated purchase order with derived financials
func NewPurchaseOrder(createdBy uuid.UUID, header PurchaseOrderHeader, rows []PurchaseOrderRow) (*PurchaseOrder, error) {
	po := &PurchaseOrder{OwnedAggregateRoot: shared.NewOwnedAggregateRoot(createdBy)}
	if err := po.Apply(header, rows); err != nil {
		return nil, err
	}
	return po, nil
}

// Apply replaces the header and the full row set, recomputing the financial
// fields of every row.
func (po *PurchaseOrder) Apply(header PurchaseOrderHeader, rows []PurchaseOrderRow) error {
	if err := header.validate(); err != nil {
		return err
	}
	if len(rows) == 0 {
		return shared.NewDomainError("MISSING_FIELD", "At least one row is required")
	}

	computed := make([]PurchaseOrderRow, 0, len(rows))
	for _, row := range rows {
		if err := row.validate(); err != nil {
			return err
		}
		computed = append(computed, row.computeFinancials())
	}

	po.PurchaseOrderHeader = header
	po.Rows = computed
	po.UpdatedAt = time.Now()
	po.IncrementVersion()
	return nil
}

// Number returns the business key
func (po *PurchaseOrder) Number() string {
	return po.PONumber
}

// CapacityLines exposes the ordered quantities per item name, the capacity
// consumed by GRN rows referencing this order.
func (po *PurchaseOrder) CapacityLines() []CapacityLine {
	lines := make([]CapacityLine, 0, len(po.Rows))
	for _, row := range po.Rows {
		lines = append(lines, CapacityLine{Item: row.Name, Capacity: row.Quantity})
	}
	return lines
}

// TotalAmount sums the row totals
func (po *PurchaseOrder) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, row := range po.Rows {
		total = total.Add(row.TotalAmount)
	}
	return total
}
