package procurement

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
)

// memoryRepo is an in-memory document repository used across the service
// tests. It implements the shared repository surface plus lookup by business
// key, with visibility filtering and substring search matching what the
// persistence layer does.
type memoryRepo[T any] struct {
	mu     sync.Mutex
	items  map[uuid.UUID]*T
	id     func(*T) uuid.UUID
	number func(*T) string
	owner  func(*T) uuid.UUID
}

func newMemoryRepo[T any](id func(*T) uuid.UUID, number func(*T) string, owner func(*T) uuid.UUID) *memoryRepo[T] {
	return &memoryRepo[T]{
		items:  make(map[uuid.UUID]*T),
		id:     id,
		number: number,
		owner:  owner,
	}
}

func (m *memoryRepo[T]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

func (m *memoryRepo[T]) matches(item *T, filter shared.Filter) bool {
	if ownerID, ok := filter.Filters["created_by"]; ok {
		if m.owner(item) != ownerID.(uuid.UUID) {
			return false
		}
	}
	if filter.Search != "" {
		if !strings.Contains(strings.ToLower(m.number(item)), strings.ToLower(filter.Search)) {
			return false
		}
	}
	return true
}

func (m *memoryRepo[T]) FindAll(_ context.Context, filter shared.Filter) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, 0, len(m.items))
	for _, item := range m.items {
		if m.matches(item, filter) {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *memoryRepo[T]) Count(_ context.Context, filter shared.Filter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, item := range m.items {
		if m.matches(item, filter) {
			n++
		}
	}
	return n, nil
}

func (m *memoryRepo[T]) Save(_ context.Context, entity *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[m.id(entity)] = entity
	return nil
}

func (m *memoryRepo[T]) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memoryRepo[T]) FindByNumber(_ context.Context, number string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range m.items {
		if m.number(item) == number {
			return item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memoryRepo[T]) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	_, err := m.FindByNumber(ctx, number)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func newRequisitionRepo() *memoryRepo[procurement.Requisition] {
	return newMemoryRepo(
		func(r *procurement.Requisition) uuid.UUID { return r.ID },
		func(r *procurement.Requisition) string { return r.DRNumber },
		func(r *procurement.Requisition) uuid.UUID { return r.CreatedBy },
	)
}

func newPurchaseOrderRepo() *memoryRepo[procurement.PurchaseOrder] {
	return newMemoryRepo(
		func(po *procurement.PurchaseOrder) uuid.UUID { return po.ID },
		func(po *procurement.PurchaseOrder) string { return po.PONumber },
		func(po *procurement.PurchaseOrder) uuid.UUID { return po.CreatedBy },
	)
}

func newGRNRepo() *memoryRepo[procurement.GRN] {
	return newMemoryRepo(
		func(g *procurement.GRN) uuid.UUID { return g.ID },
		func(g *procurement.GRN) string { return g.GRNNumber },
		func(g *procurement.GRN) uuid.UUID { return g.CreatedBy },
	)
}

func newGRNReturnRepo() *memoryRepo[procurement.GRNReturn] {
	return newMemoryRepo(
		func(gr *procurement.GRNReturn) uuid.UUID { return gr.ID },
		func(gr *procurement.GRNReturn) string { return gr.GRNRNumber },
		func(gr *procurement.GRNReturn) uuid.UUID { return gr.CreatedBy },
	)
}

func newIssueRepo() *memoryRepo[procurement.Issue] {
	return newMemoryRepo(
		func(is *procurement.Issue) uuid.UUID { return is.ID },
		func(is *procurement.Issue) string { return is.DemandNo },
		func(is *procurement.Issue) uuid.UUID { return is.CreatedBy },
	)
}

func newIssueReturnRepo() *memoryRepo[procurement.IssueReturn] {
	return newMemoryRepo(
		func(ir *procurement.IssueReturn) uuid.UUID { return ir.ID },
		func(ir *procurement.IssueReturn) string { return ir.IRNumber },
		func(ir *procurement.IssueReturn) uuid.UUID { return ir.CreatedBy },
	)
}

// memoryConsumptionRepo mirrors the persistence behavior of consumption
// records: replaced on document writes, kept after document deletes.
type memoryConsumptionRepo struct {
	mu      sync.Mutex
	records map[string]map[uuid.UUID][]procurement.Consumption
}

func newConsumptionRepo() *memoryConsumptionRepo {
	return &memoryConsumptionRepo{records: make(map[string]map[uuid.UUID][]procurement.Consumption)}
}

func (m *memoryConsumptionRepo) ReplaceForDocument(_ context.Context, link string, documentID uuid.UUID, claims []procurement.Consumption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records[link] == nil {
		m.records[link] = make(map[uuid.UUID][]procurement.Consumption)
	}
	m.records[link][documentID] = append([]procurement.Consumption(nil), claims...)
	return nil
}

func (m *memoryConsumptionRepo) SumByUpstream(_ context.Context, link, upstreamKey string, excludeID uuid.UUID) (procurement.ConsumedQuantities, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(procurement.ConsumedQuantities)
	for docID, claims := range m.records[link] {
		if docID == excludeID {
			continue
		}
		for _, c := range claims {
			if c.UpstreamKey == upstreamKey {
				out[c.Item] = out[c.Item].Add(c.Quantity)
			}
		}
	}
	return out, nil
}
