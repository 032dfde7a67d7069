// Package procurement models the document chain
// Requisition → Purchase Order → GRN → {GRN Return, Issue → Issue Return}.
//
// Every document is a header plus an ordered list of rows. Downstream rows
// consume capacity recorded on upstream rows; the reconciliation engine in the
// application layer enforces that cumulative consumption never exceeds that
// capacity.
package procurement

import (
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxRemarkLength caps every remark field, header and row alike
const MaxRemarkLength = 150

// MaxDRNumberLength caps the requisition business key
const MaxDRNumberLength = 10

// CapacityLine is one upstream row viewed as consumable capacity,
// identified by item name within its document.
type CapacityLine struct {
	Item     string
	Capacity decimal.Decimal
}

// Consumption is one downstream row's claim against an upstream line
type Consumption struct {
	UpstreamKey string
	Item        string
	Quantity    decimal.Decimal
}

func validateRemark(field, value string) error {
	if len(value) > MaxRemarkLength {
		return shared.NewDomainErrorf("INVALID_FORMAT", "%s cannot exceed %d characters", field, MaxRemarkLength)
	}
	return nil
}

func requireFields(pairs map[string]string) error {
	for field, value := range pairs {
		if value == "" {
			return shared.NewDomainErrorf("MISSING_FIELD", "%s is required", field)
		}
	}
	return nil
}
