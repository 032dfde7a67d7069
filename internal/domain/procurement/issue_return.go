package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// IssueReturnRow is a line returning issued goods to the store
type IssueReturnRow struct {
	Action             string
	SerialNo           string
	Level3ItemCategory string
	ItemName           string
	Unit               string
	IssueQty           decimal.Decimal
	PreviousReturnQty  decimal.Decimal
	BalanceIssueQty    decimal.Decimal
	ReturnQty          decimal.Decimal
	RowRemarks         string
}

func (r IssueReturnRow) validate() error {
	if err := requireFields(map[string]string{
		"level3ItemCategory": r.Level3ItemCategory,
		"itemName":           r.ItemName,
		"unit":               r.Unit,
	}); err != nil {
		return err
	}
	if r.ReturnQty.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_FORMAT", "Return quantity must be positive")
	}
	return validateRemark("Row remarks", r.RowRemarks)
}

// IssueReturnHeader holds the descriptive header fields of an issue return.
// DRNumber is the demand number of the issue being returned against.
type IssueReturnHeader struct {
	IRNumber string
	IRDate   time.Time
	DRNumber string
	DRDate   time.Time
	Remarks  string
}

func (h IssueReturnHeader) validate() error {
	if err := requireFields(map[string]string{
		"irNumber": h.IRNumber,
		"drNumber": h.DRNumber,
	}); err != nil {
		return err
	}
	if h.IRDate.IsZero() {
		return shared.NewDomainError("MISSING_FIELD", "irDate is required")
	}
	return validateRemark("Remarks", h.Remarks)
}

// IssueReturn brings issued goods back to the store. Returned quantity is
// consumption of the issue's capacity; it closes the chain.
type IssueReturn struct {
	shared.OwnedAggregateRoot
	IssueReturnHeader
	Rows []IssueReturnRow
}

// NewIssueReturn creates a validated issue return owned by the given user
func NewIssueReturn(createdBy uuid.UUID, header IssueReturnHeader, rows []IssueReturnRow) (*IssueReturn, error) {
	ir := &IssueReturn{OwnedAggregateRoot: shared.NewOwnedAggregateRoot(createdBy)}
	if err := ir.Apply(header, rows); err != nil {
		return nil, err
	}
	return ir, nil
}

// Apply replaces the header and the full row set
func (ir *IssueReturn) Apply(header IssueReturnHeader, rows []IssueReturnRow) error {
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

	ir.IssueReturnHeader = header
	ir.Rows = rows
	ir.UpdatedAt = time.Now()
	ir.IncrementVersion()
	return nil
}

// Number returns the business key
func (ir *IssueReturn) Number() string {
	return ir.IRNumber
}

// Consumptions lists this return's claims against the referenced issue.
// Every row consumes from the single header-level demand number reference.
func (ir *IssueReturn) Consumptions() []Consumption {
	claims := make([]Consumption, 0, len(ir.Rows))
	for _, row := range ir.Rows {
		claims = append(claims, Consumption{
			UpstreamKey: ir.DRNumber,
			Item:        row.ItemName,
			Quantity:    row.ReturnQty,
		})
	}
	return claims
}
