package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/application/reconciliation"
	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// IssueReturnService handles issue return operations. Returned quantities
// consume the referenced issue's capacity; the return's drNumber resolves
// against the issue's demand number.
type IssueReturnService struct {
	repo         procurement.IssueReturnRepository
	issueRepo    procurement.IssueRepository
	consumptions procurement.ConsumptionRepository
	engine       *reconciliation.Engine
	logger       *zap.Logger
}

// NewIssueReturnService creates a new IssueReturnService
func NewIssueReturnService(
	repo procurement.IssueReturnRepository,
	issueRepo procurement.IssueRepository,
	consumptions procurement.ConsumptionRepository,
	engine *reconciliation.Engine,
	logger *zap.Logger,
) *IssueReturnService {
	return &IssueReturnService{
		repo:         repo,
		issueRepo:    issueRepo,
		consumptions: consumptions,
		engine:       engine,
		logger:       logger,
	}
}

func (s *IssueReturnService) link() reconciliation.Link {
	return reconciliation.Link{
		Name: procurement.LinkIssueToIssueRtrn,
		ResolveCapacity: func(ctx context.Context, demandNo string) (map[string]decimal.Decimal, error) {
			is, err := s.issueRepo.FindByNumber(ctx, demandNo)
			if err != nil {
				return nil, shared.NewDomainErrorf("NOT_FOUND", "Issue %s not found", demandNo)
			}
			return reconciliation.CapacityByItem(is.CapacityLines()), nil
		},
		SumConsumed: func(ctx context.Context, demandNo string, excludeID uuid.UUID) (procurement.ConsumedQuantities, error) {
			return s.consumptions.SumByUpstream(ctx, procurement.LinkIssueToIssueRtrn, demandNo, excludeID)
		},
	}
}

// Create validates the return against the issue's capacity and stores it
func (s *IssueReturnService) Create(ctx context.Context, actor Actor, req IssueReturnRequest) (*IssueReturnResponse, error) {
	header, rows, err := req.toDomain()
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByNumber(ctx, header.IRNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf("DUPLICATE_KEY", "Issue return %s already exists", header.IRNumber)
	}

	ir, err := procurement.NewIssueReturn(actor.ID, header, rows)
	if err != nil {
		return nil, err
	}

	claims := ir.Consumptions()
	err = s.engine.Reconcile(ctx, s.link(), claims, uuid.Nil, func(ctx context.Context) error {
		if err := s.repo.Save(ctx, ir); err != nil {
			return err
		}
		return s.consumptions.ReplaceForDocument(ctx, procurement.LinkIssueToIssueRtrn, ir.ID, claims)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("issue return created",
		zap.String("irNumber", ir.IRNumber),
		zap.String("createdBy", actor.ID.String()))
	return toIssueReturnResponse(ir), nil
}

// List returns the issue returns visible to the actor, newest first
func (s *IssueReturnService) List(ctx context.Context, actor Actor, filter shared.Filter) (*shared.Paginated[IssueReturnResponse], error) {
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

	responses := make([]IssueReturnResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *toIssueReturnResponse(&items[i]))
	}
	page := shared.NewPaginated(responses, total, scoped.Page, scoped.PageSize)
	return &page, nil
}

// Search lists issue returns whose number contains the query,
// case-insensitively, within the actor's visibility scope.
func (s *IssueReturnService) Search(ctx context.Context, actor Actor, query string, filter shared.Filter) (*shared.Paginated[IssueReturnResponse], error) {
	filter.Search = query
	return s.List(ctx, actor, filter)
}

// Get returns one issue return by its number
func (s *IssueReturnService) Get(ctx context.Context, actor Actor, irNumber string) (*IssueReturnResponse, error) {
	ir, err := s.repo.FindByNumber(ctx, irNumber)
	if err != nil {
		return nil, err
	}
	if !canRead(actor, ir.CreatedBy) {
		return nil, shared.ErrNotFound
	}
	return toIssueReturnResponse(ir), nil
}

// Update replaces the return wholesale and re-reconciles, excluding the
// stored rows of the return under edit from the sibling sum.
func (s *IssueReturnService) Update(ctx context.Context, actor Actor, irNumber string, req IssueReturnRequest) (*IssueReturnResponse, error) {
	ir, err := s.repo.FindByNumber(ctx, irNumber)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, ir.CreatedBy) {
		return nil, shared.ErrUnauthorized
	}

	header, rows, err := req.toDomain()
	if err != nil {
		return nil, err
	}
	if header.IRNumber != ir.IRNumber {
		exists, err := s.repo.ExistsByNumber(ctx, header.IRNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainErrorf("DUPLICATE_KEY", "Issue return %s already exists", header.IRNumber)
		}
	}

	if err := ir.Apply(header, rows); err != nil {
		return nil, err
	}

	claims := ir.Consumptions()
	err = s.engine.Reconcile(ctx, s.link(), claims, ir.ID, func(ctx context.Context) error {
		if err := s.repo.Save(ctx, ir); err != nil {
			return err
		}
		return s.consumptions.ReplaceForDocument(ctx, procurement.LinkIssueToIssueRtrn, ir.ID, claims)
	})
	if err != nil {
		return nil, err
	}
	return toIssueReturnResponse(ir), nil
}

// Delete removes the return document only; its consumption records stay
// behind, so the issue capacity it claimed is not re-opened.
func (s *IssueReturnService) Delete(ctx context.Context, actor Actor, irNumber string) error {
	ir, err := s.repo.FindByNumber(ctx, irNumber)
	if err != nil {
		return err
	}
	if !canDelete(actor, ir.CreatedBy) {
		return shared.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, ir.ID); err != nil {
		return err
	}
	s.logger.Info("issue return deleted",
		zap.String("irNumber", irNumber),
		zap.String("deletedBy", actor.ID.String()))
	return nil
}
