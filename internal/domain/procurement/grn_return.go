package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// GRNReturnRow is a line returning received goods to the supplier
type GRNReturnRow struct {
	Action            string
	SerialNo          string
	Category          string
	Name              string
	Unit              string
	GRNQty            decimal.Decimal
	PreviousReturnQty decimal.Decimal
	BalanceGRNQty     decimal.Decimal
	ReturnQty         decimal.Decimal
	RowRemarks        string
}

func (r GRNReturnRow) validate() error {
	if err := requireFields(map[string]string{
		"category": r.Category,
		"name":     r.Name,
		"unit":     r.Unit,
	}); err != nil {
		return err
	}
	if r.ReturnQty.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_FORMAT", "Return quantity must be positive")
	}
	return validateRemark("Row remarks", r.RowRemarks)
}

// GRNReturnHeader holds the descriptive header fields of a GRN return.
// GRNNumber is the mandatory upstream reference; the whole document returns
// against a single receipt.
type GRNReturnHeader struct {
	GRNRNumber string
	GRNRDate   time.Time
	GRNNumber  string
	GRNDate    time.Time
	Remarks    string
}

func (h GRNReturnHeader) validate() error {
	if err := requireFields(map[string]string{
		"grnrNumber": h.GRNRNumber,
		"grnNumber":  h.GRNNumber,
	}); err != nil {
		return err
	}
	if h.GRNRDate.IsZero() {
		return shared.NewDomainError("MISSING_FIELD", "grnrDate is required")
	}
	return validateRemark("Remarks", h.Remarks)
}

// GRNReturn sends previously received goods back, releasing nothing:
// returned quantity is consumption of the receipt's capacity.
type GRNReturn struct {
	shared.OwnedAggregateRoot
	GRNReturnHeader
	Rows []GRNReturnRow
}

// NewGRNReturn creates a validated GRN return owned by the given user
func NewGRNReturn(createdBy uuid.UUID, header GRNReturnHeader, rows []GRNReturnRow) (*GRNReturn, error) {
	gr := &GRNReturn{OwnedAggregateRoot: shared.NewOwnedAggregateRoot(createdBy)}
	if err := gr.Apply(header, rows); err != nil {
		return nil, err
	}
	return gr, nil
}

// Apply replaces the header and the full row set
func (gr *GRNReturn) Apply(header GRNReturnHeader, rows []GRNReturnRow) error {
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

	gr.GRNReturnHeader = header
	gr.Rows = rows
	gr.UpdatedAt = time.Now()
	gr.IncrementVersion()
	return nil
}

// Number returns the business key
func (gr *GRNReturn) Number() string {
	return gr.GRNRNumber
}

// Consumptions lists this return's claims against the referenced receipt.
// Every row consumes from the single header-level GRN reference.
func (gr *GRNReturn) Consumptions() []Consumption {
	claims := make([]Consumption, 0, len(gr.Rows))
	for _, row := range gr.Rows {
		claims = append(claims, Consumption{
			UpstreamKey: gr.GRNNumber,
			Item:        row.Name,
			Quantity:    row.ReturnQty,
		})
	}
	return claims
}
