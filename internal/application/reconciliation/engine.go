// Package reconciliation enforces the quantity invariant of the document
// chain: for every upstream line, the summed downstream consumption never
// exceeds the line's capacity. Validation and persistence run inside
// per-upstream-key critical sections so concurrent writers cannot both pass
// a near-capacity check.
package reconciliation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/ledger"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Link binds the engine to one edge of the document chain. ResolveCapacity
// loads the upstream document's capacity per item name, returning
// NOT_FOUND when the key does not resolve. SumConsumed aggregates the
// consumption already recorded by sibling documents against the same
// upstream key, excluding the document identified by excludeID.
type Link struct {
	Name            string
	ResolveCapacity func(ctx context.Context, upstreamKey string) (map[string]decimal.Decimal, error)
	SumConsumed     func(ctx context.Context, upstreamKey string, excludeID uuid.UUID) (procurement.ConsumedQuantities, error)
}

// Engine validates consumption claims and persists the claiming document
// atomically per upstream key.
type Engine struct {
	keys   *KeyedMutex
	logger *zap.Logger
}

// NewEngine creates a reconciliation engine
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		keys:   NewKeyedMutex(),
		logger: logger,
	}
}

// Reconcile validates the claims against the link's upstream capacity and,
// if every claim fits, runs persist while still holding the per-key locks.
// excludeID identifies the document under edit so its own stored rows do not
// count against itself; pass uuid.Nil on create. Documents without claims
// skip validation and persist directly.
func (e *Engine) Reconcile(
	ctx context.Context,
	link Link,
	claims []procurement.Consumption,
	excludeID uuid.UUID,
	persist func(ctx context.Context) error,
) error {
	grouped := groupClaims(claims)
	if len(grouped) == 0 {
		return persist(ctx)
	}

	keys := make([]string, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	unlock := e.keys.Lock(keys)
	defer unlock()

	for _, key := range keys {
		capacity, err := link.ResolveCapacity(ctx, key)
		if err != nil {
			return err
		}
		consumed, err := link.SumConsumed(ctx, key, excludeID)
		if err != nil {
			return err
		}

		for item, requested := range grouped[key] {
			lineCapacity, ok := capacity[item]
			if !ok {
				return shared.NewDomainErrorf("NOT_FOUND",
					"Item %q not found in %s", item, key)
			}
			prior := consumed[item]
			if _, err := ledger.ValidateConsumption(lineCapacity, prior, requested); err != nil {
				var domainErr *shared.DomainError
				if errors.As(err, &domainErr) && domainErr.Code == "QUANTITY_EXCEEDED" {
					e.logger.Warn("consumption rejected",
						zap.String("link", link.Name),
						zap.String("upstream", key),
						zap.String("item", item),
						zap.String("requested", requested.String()),
						zap.String("available", lineCapacity.Sub(prior).String()),
					)
					return shared.NewDomainErrorf("QUANTITY_EXCEEDED",
						"Quantity %s for %q exceeds the balance %s available on %s",
						requested.String(), item, lineCapacity.Sub(prior).String(), key)
				}
				return err
			}
		}
	}

	return persist(ctx)
}

// groupClaims merges claims by (upstream key, item), summing quantities so
// several rows against the same line are validated as one demand.
func groupClaims(claims []procurement.Consumption) map[string]map[string]decimal.Decimal {
	grouped := make(map[string]map[string]decimal.Decimal)
	for _, claim := range claims {
		byItem, ok := grouped[claim.UpstreamKey]
		if !ok {
			byItem = make(map[string]decimal.Decimal)
			grouped[claim.UpstreamKey] = byItem
		}
		byItem[claim.Item] = byItem[claim.Item].Add(claim.Quantity)
	}
	return grouped
}

// CapacityByItem flattens capacity lines into a per-item map, summing
// duplicate item names on the upstream document.
func CapacityByItem(lines []procurement.CapacityLine) map[string]decimal.Decimal {
	capacity := make(map[string]decimal.Decimal, len(lines))
	for _, line := range lines {
		capacity[line.Item] = capacity[line.Item].Add(line.Capacity)
	}
	return capacity
}
