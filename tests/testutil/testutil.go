// Package testutil provides common test utilities for the procurement
// backend. It contains in-memory repository implementations and HTTP
// helpers used by the integration tests.
package testutil

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/procure/backend/internal/domain/identity"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/procure/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// MemStore is an in-memory document repository. It implements
// shared.Repository plus the FindByNumber and ExistsByNumber methods the
// document repositories add, so one generic store backs all six document
// types in tests.
type MemStore[T any] struct {
	mu     sync.RWMutex
	items  map[uuid.UUID]*T
	id     func(*T) uuid.UUID
	number func(*T) string
	owner  func(*T) uuid.UUID
}

// NewMemStore creates a store keyed by the given accessor functions.
func NewMemStore[T any](id func(*T) uuid.UUID, number func(*T) string, owner func(*T) uuid.UUID) *MemStore[T] {
	return &MemStore[T]{
		items:  make(map[uuid.UUID]*T),
		id:     id,
		number: number,
		owner:  owner,
	}
}

func (s *MemStore[T]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return item, nil
}

func (s *MemStore[T]) matches(item *T, filter shared.Filter) bool {
	if ownerFilter, ok := filter.Filters["created_by"]; ok {
		ownerID, ok := ownerFilter.(uuid.UUID)
		if !ok || s.owner(item) != ownerID {
			return false
		}
	}
	return true
}

func (s *MemStore[T]) FindAll(_ context.Context, filter shared.Filter) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if s.matches(item, filter) {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (s *MemStore[T]) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	items, err := s.FindAll(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

func (s *MemStore[T]) Save(_ context.Context, item *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[s.id(item)] = item
	return nil
}

func (s *MemStore[T]) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemStore[T]) FindByNumber(_ context.Context, number string) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if s.number(item) == number {
			return item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *MemStore[T]) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	if _, err := s.FindByNumber(ctx, number); err != nil {
		return false, nil
	}
	return true, nil
}

// Document stores with the accessors each aggregate exposes. The compiler
// checks them against the repository interfaces the services require.
func NewRequisitionStore() *MemStore[procurement.Requisition] {
	return NewMemStore(
		func(r *procurement.Requisition) uuid.UUID { return r.ID },
		func(r *procurement.Requisition) string { return r.DRNumber },
		func(r *procurement.Requisition) uuid.UUID { return r.CreatedBy },
	)
}

func NewPurchaseOrderStore() *MemStore[procurement.PurchaseOrder] {
	return NewMemStore(
		func(po *procurement.PurchaseOrder) uuid.UUID { return po.ID },
		func(po *procurement.PurchaseOrder) string { return po.PONumber },
		func(po *procurement.PurchaseOrder) uuid.UUID { return po.CreatedBy },
	)
}

func NewGRNStore() *MemStore[procurement.GRN] {
	return NewMemStore(
		func(g *procurement.GRN) uuid.UUID { return g.ID },
		func(g *procurement.GRN) string { return g.GRNNumber },
		func(g *procurement.GRN) uuid.UUID { return g.CreatedBy },
	)
}

func NewGRNReturnStore() *MemStore[procurement.GRNReturn] {
	return NewMemStore(
		func(gr *procurement.GRNReturn) uuid.UUID { return gr.ID },
		func(gr *procurement.GRNReturn) string { return gr.GRNRNumber },
		func(gr *procurement.GRNReturn) uuid.UUID { return gr.CreatedBy },
	)
}

func NewIssueStore() *MemStore[procurement.Issue] {
	return NewMemStore(
		func(is *procurement.Issue) uuid.UUID { return is.ID },
		func(is *procurement.Issue) string { return is.DemandNo },
		func(is *procurement.Issue) uuid.UUID { return is.CreatedBy },
	)
}

func NewIssueReturnStore() *MemStore[procurement.IssueReturn] {
	return NewMemStore(
		func(ir *procurement.IssueReturn) uuid.UUID { return ir.ID },
		func(ir *procurement.IssueReturn) string { return ir.IRNumber },
		func(ir *procurement.IssueReturn) uuid.UUID { return ir.CreatedBy },
	)
}

var (
	_ procurement.RequisitionRepository   = (*MemStore[procurement.Requisition])(nil)
	_ procurement.PurchaseOrderRepository = (*MemStore[procurement.PurchaseOrder])(nil)
	_ procurement.GRNRepository           = (*MemStore[procurement.GRN])(nil)
	_ procurement.GRNReturnRepository     = (*MemStore[procurement.GRNReturn])(nil)
	_ procurement.IssueRepository         = (*MemStore[procurement.Issue])(nil)
	_ procurement.IssueReturnRepository   = (*MemStore[procurement.IssueReturn])(nil)
)

// MemConsumptionStore is an in-memory consumption ledger matching the
// replace-wholesale and sum-excluding-self semantics of the GORM
// implementation.
type MemConsumptionStore struct {
	mu      sync.Mutex
	records []procurement.ConsumptionRecord
}

func NewMemConsumptionStore() *MemConsumptionStore {
	return &MemConsumptionStore{}
}

func (s *MemConsumptionStore) ReplaceForDocument(_ context.Context, link string, documentID uuid.UUID, claims []procurement.Consumption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.records[:0]
	for _, rec := range s.records {
		if rec.Link == link && rec.DocumentID == documentID {
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	for _, claim := range claims {
		s.records = append(s.records, procurement.ConsumptionRecord{
			ID:          uuid.New(),
			Link:        link,
			DocumentID:  documentID,
			UpstreamKey: claim.UpstreamKey,
			Item:        claim.Item,
			Quantity:    claim.Quantity,
		})
	}
	return nil
}

func (s *MemConsumptionStore) SumByUpstream(_ context.Context, link, upstreamKey string, excludeID uuid.UUID) (procurement.ConsumedQuantities, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sums := make(procurement.ConsumedQuantities)
	for _, rec := range s.records {
		if rec.Link != link || rec.UpstreamKey != upstreamKey || rec.DocumentID == excludeID {
			continue
		}
		prev, ok := sums[rec.Item]
		if !ok {
			prev = decimal.Zero
		}
		sums[rec.Item] = prev.Add(rec.Quantity)
	}
	return sums, nil
}

var _ procurement.ConsumptionRepository = (*MemConsumptionStore)(nil)

// MemUserStore is an in-memory user repository keyed by ID and email.
type MemUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*identity.User
}

func NewMemUserStore() *MemUserStore {
	return &MemUserStore{users: make(map[uuid.UUID]*identity.User)}
}

func (s *MemUserStore) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func (s *MemUserStore) FindByEmail(_ context.Context, emailAddress string) (*identity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.EmailAddress == emailAddress {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *MemUserStore) FindAll(_ context.Context, _ shared.Filter) ([]identity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]identity.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *MemUserStore) FindByStatus(_ context.Context, status identity.UserStatus) ([]identity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]identity.User, 0)
	for _, u := range s.users {
		if u.Status == status {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *MemUserStore) Save(_ context.Context, user *identity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *MemUserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return shared.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *MemUserStore) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	users, err := s.FindAll(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(users)), nil
}

var _ identity.UserRepository = (*MemUserStore)(nil)
