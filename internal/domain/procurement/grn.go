package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// GRNRow is a goods receipt line. PONo references the purchase order whose
// ordered quantity this receipt consumes; whether it may be left empty is a
// chain-policy decision made in the application layer, not here.
type GRNRow struct {
	PONo         string
	Department   string
	Category     string
	Name         string
	Unit         string
	POQty        decimal.Decimal
	PreviousQty  decimal.Decimal
	BalancePOQty decimal.Decimal
	ReceivedQty  decimal.Decimal
	RowRemarks   string
}

func (r GRNRow) validate() error {
	if err := requireFields(map[string]string{
		"department": r.Department,
		"category":   r.Category,
		"name":       r.Name,
		"unit":       r.Unit,
	}); err != nil {
		return err
	}
	if r.ReceivedQty.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_FORMAT", "Received quantity must be positive")
	}
	return validateRemark("Row remarks", r.RowRemarks)
}

// GRNHeader holds the descriptive header fields of a goods receipt note
type GRNHeader struct {
	GRNNumber             string
	Date                  time.Time
	SupplierChallanNumber string
	SupplierChallanDate   time.Time
	Supplier              string
	InwardNumber          string
	InwardDate            time.Time
	Remarks               string
}

func (h GRNHeader) validate() error {
	if err := requireFields(map[string]string{
		"grnNumber": h.GRNNumber,
		"supplier":  h.Supplier,
	}); err != nil {
		return err
	}
	if h.Date.IsZero() {
		return shared.NewDomainError("MISSING_FIELD", "date is required")
	}
	return validateRemark("Remarks", h.Remarks)
}

// GRN records goods received against purchase orders. Its received
// quantities are simultaneously consumption of PO capacity and new capacity
// for GRN returns and issues.
type GRN struct {
	shared.OwnedAggregateRoot
	GRNHeader
	Rows []GRNRow
}

// NewGRN creates a validated goods receipt note owned by the given user
func NewGRN(createdBy uuid.UUID, header GRNHeader, rows []GRNRow) (*GRN, error) {
	g := &GRN{OwnedAggregateRoot: shared.NewOwnedAggregateRoot(createdBy)}
	if err := g.Apply(header, rows); err != nil {
		return nil, err
	}
	return g, nil
}

// Apply replaces the header and the full row set
func (g *GRN) Apply(header GRNHeader, rows []GRNRow) error {
	if err := header.validate(); err != nil {
		return err
	}
	if len(rows) == 0 {
		return shared.NewDomainError("MISSING_FIELD", "At least one row is required")
	}
	for _, row := range rows {
		if err := row.validate(); err != nil {
			return err
		}
	}

	g.GRNHeader = header
	g.Rows = rows
	g.UpdatedAt = time.Now()
	g.IncrementVersion()
	return nil
}

// Number returns the business key
func (g *GRN) Number() string {
	return g.GRNNumber
}

// Consumptions lists this receipt's claims against purchase order capacity.
// Rows without a PO reference are skipped; the chain policy decides whether
// such rows are allowed at all.
func (g *GRN) Consumptions() []Consumption {
	claims := make([]Consumption, 0, len(g.Rows))
	for _, row := range g.Rows {
		if row.PONo == "" {
			continue
		}
		claims = append(claims, Consumption{
			UpstreamKey: row.PONo,
			Item:        row.Name,
			Quantity:    row.ReceivedQty,
		})
	}
	return claims
}

// CapacityLines exposes the received quantities per item name, the capacity
// consumed by GRN return and issue rows referencing this receipt.
func (g *GRN) CapacityLines() []CapacityLine {
	lines := make([]CapacityLine, 0, len(g.Rows))
	for _, row := range g.Rows {
		lines = append(lines, CapacityLine{Item: row.Name, Capacity: row.ReceivedQty})
	}
	return lines
}
