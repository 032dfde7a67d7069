package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// IssueRow is a line issuing received goods to a consuming unit
type IssueRow struct {
	Action             string
	SerialNo           string
	Level3ItemCategory string
	ItemName           string
	UOM                string
	GRNQty             decimal.Decimal
	PreviousIssueQty   decimal.Decimal
	BalanceQty         decimal.Decimal
	IssueQty           decimal.Decimal
	RowRemarks         string
}

func (r IssueRow) validate() error {
	if err := requireFields(map[string]string{
		"level3ItemCategory": r.Level3ItemCategory,
		"itemName":           r.ItemName,
		"uom":                r.UOM,
	}); err != nil {
		return err
	}
	if r.IssueQty.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_FORMAT", "Issue quantity must be positive")
	}
	return validateRemark("Row remarks", r.RowRemarks)
}

// IssueHeader holds the descriptive header fields of an issue. GRNNumber is
// the upstream receipt reference; whether it may be empty is a chain-policy
// decision. DemandNo is the business key issue returns resolve against.
type IssueHeader struct {
	IssueNumber       string
	GRNNumber         string
	IssueDate         time.Time
	Store             string
	RequisitionType   string
	IssueToUnit       string
	IssueToDepartment string
	DemandNo          string
	VehicleType       string
	VehicleNo         string
	Driver            string
	Remarks           string
}

func (h IssueHeader) validate() error {
	if err := requireFields(map[string]string{
		"store":             h.Store,
		"requisitionType":   h.RequisitionType,
		"issueToUnit":       h.IssueToUnit,
		"issueToDepartment": h.IssueToDepartment,
		"demandNo":          h.DemandNo,
	}); err != nil {
		return err
	}
	if h.IssueDate.IsZero() {
		return shared.NewDomainError("MISSING_FIELD", "issueDate is required")
	}
	return validateRemark("Remarks", h.Remarks)
}

// Issue hands received goods to a unit or department. Issued quantities
// consume receipt capacity and in turn become capacity for issue returns.
type Issue struct {
	shared.OwnedAggregateRoot
	IssueHeader
	Rows []IssueRow
}

// NewIssue creates a validated issue owned by the given user
func NewIssue(createdBy uuid.UUID, header IssueHeader, rows []IssueRow) (*Issue, error) {
	is := &Issue{OwnedAggregateRoot: shared.NewOwnedAggregateRoot(createdBy)}
	if err := is.Apply(header, rows); err != nil {
		return nil, err
	}
	return is, nil
}

// Apply replaces the header and the full row set
func (is *Issue) Apply(header IssueHeader, rows []IssueRow) error {
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

	is.IssueHeader = header
	is.Rows = rows
	is.UpdatedAt = time.Now()
	is.IncrementVersion()
	return nil
}

// Number returns the business key. Issues are addressed by demand number;
// issueNumber is an optional secondary identifier.
func (is *Issue) Number() string {
	return is.DemandNo
}

// Consumptions lists this issue's claims against the referenced receipt.
// An issue without a GRN reference claims nothing; the chain policy decides
// whether that is allowed.
func (is *Issue) Consumptions() []Consumption {
	if is.GRNNumber == "" {
		return nil
	}
	claims := make([]Consumption, 0, len(is.Rows))
	for _, row := range is.Rows {
		claims = append(claims, Consumption{
			UpstreamKey: is.GRNNumber,
			Item:        row.ItemName,
			Quantity:    row.IssueQty,
		})
	}
	return claims
}

// CapacityLines exposes the issued quantities per item name, the capacity
// consumed by issue return rows referencing this issue's demand number.
func (is *Issue) CapacityLines() []CapacityLine {
	lines := make([]CapacityLine, 0, len(is.Rows))
	for _, row := range is.Rows {
		lines = append(lines, CapacityLine{Item: row.ItemName, Capacity: row.IssueQty})
	}
	return lines
}
