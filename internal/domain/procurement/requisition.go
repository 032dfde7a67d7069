package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RequisitionItem is a line item on a requisition
type RequisitionItem struct {
	Level3ItemCategory string
	ItemName           string
	UOM                string
	Quantity           decimal.Decimal
	Rate               decimal.Decimal
	Amount             decimal.Decimal
	Remarks            string
}

func (i RequisitionItem) validate() error {
	if err := requireFields(map[string]string{
		"level3ItemCategory": i.Level3ItemCategory,
		"itemName":           i.ItemName,
		"uom":                i.UOM,
	}); err != nil {
		return err
	}
	if i.Quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_FORMAT", "Item quantity must be positive")
	}
	return validateRemark("Item remarks", i.Remarks)
}

// RequisitionHeader holds the descriptive header fields of a requisition
type RequisitionHeader struct {
	DRNumber        string
	Date            time.Time
	Department      string
	RequisitionType string
	HeaderRemarks   string
}

func (h RequisitionHeader) validate() error {
	if err := requireFields(map[string]string{
		"drNumber":        h.DRNumber,
		"department":      h.Department,
		"requisitionType": h.RequisitionType,
	}); err != nil {
		return err
	}
	if len(h.DRNumber) > MaxDRNumberLength {
		return shared.NewDomainErrorf("INVALID_FORMAT", "drNumber cannot exceed %d characters", MaxDRNumberLength)
	}
	if h.Date.IsZero() {
		return shared.NewDomainError("MISSING_FIELD", "date is required")
	}
	return validateRemark("Header remarks", h.HeaderRemarks)
}

// Requisition is the demand document opening the procurement chain.
// It has no upstream reference.
type Requisition struct {
	shared.OwnedAggregateRoot
	RequisitionHeader
	Items []RequisitionItem
}

// NewRequisition creates a validated requisition owned by the given user
func NewRequisition(createdBy uuid.UUID, header RequisitionHeader, items []RequisitionItem) (*Requisition, error) {
	r := &Requisition{OwnedAggregateRoot: shared.NewOwnedAggregateRoot(createdBy)}
	if err := r.Apply(header, items); err != nil {
		return nil, err
	}
	return r, nil
}

// Apply replaces the header and the full row set, keeping identity and
// ownership. Updates always replace rows wholesale; there is no partial-row
// patch.
func (r *Requisition) Apply(header RequisitionHeader, items []RequisitionItem) error {
	if err := header.validate(); err != nil {
		return err
	}
	if len(items) == 0 {
		return shared.NewDomainError("MISSING_FIELD", "At least one item is required")
	}
	for _, item := range items {
		if err := item.validate(); err != nil {
			return err
		}
	}

	r.RequisitionHeader = header
	r.Items = items
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// Number returns the business key
func (r *Requisition) Number() string {
	return r.DRNumber
}
