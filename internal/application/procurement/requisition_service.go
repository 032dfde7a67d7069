// Package procurement implements the application services of the document
// chain: one service per document type, each offering create, list, get,
// update, search and delete on top of the domain aggregates, with the
// reconciliation engine guarding every chain edge.
package procurement

import (
	"context"

	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// RequisitionService handles requisition operations. Requisitions open the
// chain and have no upstream to reconcile against.
type RequisitionService struct {
	repo   procurement.RequisitionRepository
	logger *zap.Logger
}

// NewRequisitionService creates a new RequisitionService
func NewRequisitionService(repo procurement.RequisitionRepository, logger *zap.Logger) *RequisitionService {
	return &RequisitionService{repo: repo, logger: logger}
}

// Create stores a new requisition owned by the actor
func (s *RequisitionService) Create(ctx context.Context, actor Actor, req RequisitionRequest) (*RequisitionResponse, error) {
	header, items, err := req.toDomain()
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByNumber(ctx, header.DRNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf("DUPLICATE_KEY", "Requisition %s already exists", header.DRNumber)
	}

	r, err := procurement.NewRequisition(actor.ID, header, items)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Info("requisition created",
		zap.String("drNumber", r.DRNumber),
		zap.String("createdBy", actor.ID.String()))
	return toRequisitionResponse(r), nil
}

// List returns the requisitions visible to the actor, newest first
func (s *RequisitionService) List(ctx context.Context, actor Actor, filter shared.Filter) (*shared.Paginated[RequisitionResponse], error) {
	scoped, err := scopeFilter(actor, filter)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.FindAll(ctx, scoped)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, scoped)
	if err != nil {
		return nil, err
	}

	responses := make([]RequisitionResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *toRequisitionResponse(&items[i]))
	}
	page := shared.NewPaginated(responses, total, scoped.Page, scoped.PageSize)
	return &page, nil
}

// Search lists requisitions whose number contains the query,
// case-insensitively, within the actor's visibility scope.
func (s *RequisitionService) Search(ctx context.Context, actor Actor, query string, filter shared.Filter) (*shared.Paginated[RequisitionResponse], error) {
	filter.Search = query
	return s.List(ctx, actor, filter)
}

// Get returns one requisition by its number
func (s *RequisitionService) Get(ctx context.Context, actor Actor, drNumber string) (*RequisitionResponse, error) {
	r, err := s.repo.FindByNumber(ctx, drNumber)
	if err != nil {
		return nil, err
	}
	if !canRead(actor, r.CreatedBy) {
		return nil, shared.ErrNotFound
	}
	return toRequisitionResponse(r), nil
}

// Update replaces the requisition's header and items wholesale
func (s *RequisitionService) Update(ctx context.Context, actor Actor, drNumber string, req RequisitionRequest) (*RequisitionResponse, error) {
	r, err := s.repo.FindByNumber(ctx, drNumber)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, r.CreatedBy) {
		return nil, shared.ErrUnauthorized
	}

	header, items, err := req.toDomain()
	if err != nil {
		return nil, err
	}
	if header.DRNumber != r.DRNumber {
		exists, err := s.repo.ExistsByNumber(ctx, header.DRNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainErrorf("DUPLICATE_KEY", "Requisition %s already exists", header.DRNumber)
		}
	}

	if err := r.Apply(header, items); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, err
	}
	return toRequisitionResponse(r), nil
}

// Delete removes the requisition. The chain keeps no back-references, so
// downstream documents are untouched.
func (s *RequisitionService) Delete(ctx context.Context, actor Actor, drNumber string) error {
	r, err := s.repo.FindByNumber(ctx, drNumber)
	if err != nil {
		return err
	}
	if !canDelete(actor, r.CreatedBy) {
		return shared.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, r.ID); err != nil {
		return err
	}
	s.logger.Info("requisition deleted",
		zap.String("drNumber", drNumber),
		zap.String("deletedBy", actor.ID.String()))
	return nil
}
