// Package ledger implements the quantity-balance arithmetic shared by every
// link of the procurement document chain. It is pure computation: an upstream
// capacity, a running consumed total, and a new request are validated the same
// way whether the link is PO→GRN, GRN→Return, GRN→Issue or Issue→Return.
package ledger

import (
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Balance is the result of a successful consumption validation
type Balance struct {
	Capacity  decimal.Decimal
	Consumed  decimal.Decimal
	Remaining decimal.Decimal
}

// ValidateConsumption checks a new consumption request against an upstream
// capacity, given the quantity already consumed by prior sibling documents.
// It fails with QUANTITY_EXCEEDED when prior+requested would overflow the
// capacity, and rejects non-positive requests outright.
func ValidateConsumption(capacity, prior, requested decimal.Decimal) (Balance, error) {
	if requested.LessThanOrEqual(decimal.Zero) {
		return Balance{}, shared.NewDomainError("INVALID_FORMAT", "Consumption quantity must be positive")
	}
	if prior.IsNegative() {
		prior = decimal.Zero
	}

	newConsumed := prior.Add(requested)
	if newConsumed.GreaterThan(capacity) {
		available := capacity.Sub(prior)
		if available.IsNegative() {
			available = decimal.Zero
		}
		return Balance{}, shared.NewDomainErrorf("QUANTITY_EXCEEDED",
			"Requested quantity %s exceeds the available balance %s", requested.String(), available.String())
	}

	return Balance{
		Capacity:  capacity,
		Consumed:  newConsumed,
		Remaining: capacity.Sub(newConsumed),
	}, nil
}
