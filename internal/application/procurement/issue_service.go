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

// IssueService handles issue operations. Issued quantities consume the
// referenced receipt's capacity; whether the GRN reference is mandatory is a
// chain-policy toggle.
type IssueService struct {
	repo         procurement.IssueRepository
	grnRepo      procurement.GRNRepository
	consumptions procurement.ConsumptionRepository
	engine       *reconciliation.Engine
	policy       reconciliation.ChainPolicy
	logger       *zap.Logger
}

// NewIssueService creates a new IssueService
func NewIssueService(
	repo procurement.IssueRepository,
	grnRepo procurement.GRNRepository,
	consumptions procurement.ConsumptionRepository,
	engine *reconciliation.Engine,
	policy reconciliation.ChainPolicy,
	logger *zap.Logger,
) *IssueService {
	return &IssueService{
		repo:         repo,
		grnRepo:      grnRepo,
		consumptions: consumptions,
		engine:       engine,
		policy:       policy,
		logger:       logger,
	}
}

func (s *IssueService) link() reconciliation.Link {
	return reconciliation.Link{
		Name: procurement.LinkGRNToIssue,
		ResolveCapacity: func(ctx context.Context, grnNumber string) (map[string]decimal.Decimal, error) {
			g, err := s.grnRepo.FindByNumber(ctx, grnNumber)
			if err != nil {
				return nil, shared.NewDomainErrorf("NOT_FOUND", "GRN %s not found", grnNumber)
			}
			return reconciliation.CapacityByItem(g.CapacityLines()), nil
		},
		SumConsumed: func(ctx context.Context, grnNumber string, excludeID uuid.UUID) (procurement.ConsumedQuantities, error) {
			return s.consumptions.SumByUpstream(ctx, procurement.LinkGRNToIssue, grnNumber, excludeID)
		},
	}
}

func (s *IssueService) checkPolicy(header procurement.IssueHeader) error {
	if s.policy.IssueRequiresGRN && header.GRNNumber == "" {
		return shared.NewDomainError("MISSING_FIELD", "grnNumber is required")
	}
	return nil
}

// Create validates the issue against the receipt's capacity and stores it
func (s *IssueService) Create(ctx context.Context, actor Actor, req IssueRequest) (*IssueResponse, error) {
	header, rows, err := req.toDomain()
	if err != nil {
		return nil, err
	}
	if err := s.checkPolicy(header); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByNumber(ctx, header.DemandNo)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf("DUPLICATE_KEY", "Issue %s already exists", header.DemandNo)
	}

	is, err := procurement.NewIssue(actor.ID, header, rows)
	if err != nil {
		return nil, err
	}

	claims := is.Consumptions()
	err = s.engine.Reconcile(ctx, s.link(), claims, uuid.Nil, func(ctx context.Context) error {
		if err := s.repo.Save(ctx, is); err != nil {
			return err
		}
		return s.consumptions.ReplaceForDocument(ctx, procurement.LinkGRNToIssue, is.ID, claims)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("issue created",
		zap.String("demandNo", is.DemandNo),
		zap.String("createdBy", actor.ID.String()))
	return toIssueResponse(is), nil
}

// List returns the issues visible to the actor, newest first
func (s *IssueService) List(ctx context.Context, actor Actor, filter shared.Filter) (*shared.Paginated[IssueResponse], error) {
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

	responses := make([]IssueResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *toIssueResponse(&items[i]))
	}
	page := shared.NewPaginated(responses, total, scoped.Page, scoped.PageSize)
	return &page, nil
}

// Search lists issues whose demand number contains the query,
// case-insensitively, within the actor's visibility scope.
func (s *IssueService) Search(ctx context.Context, actor Actor, query string, filter shared.Filter) (*shared.Paginated[IssueResponse], error) {
	filter.Search = query
	return s.List(ctx, actor, filter)
}

// Get returns one issue by its demand number
func (s *IssueService) Get(ctx context.Context, actor Actor, demandNo string) (*IssueResponse, error) {
	is, err := s.repo.FindByNumber(ctx, demandNo)
	if err != nil {
		return nil, err
	}
	if !canRead(actor, is.CreatedBy) {
		return nil, shared.ErrNotFound
	}
	return toIssueResponse(is), nil
}

// Update replaces the issue wholesale and re-reconciles, excluding the
// stored rows of the issue under edit from the sibling sum.
func (s *IssueService) Update(ctx context.Context, actor Actor, demandNo string, req IssueRequest) (*IssueResponse, error) {
	is, err := s.repo.FindByNumber(ctx, demandNo)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, is.CreatedBy) {
		return nil, shared.ErrUnauthorized
	}

	header, rows, err := req.toDomain()
	if err != nil {
		return nil, err
	}
	if err := s.checkPolicy(header); err != nil {
		return nil, err
	}
	if header.DemandNo != is.DemandNo {
		exists, err := s.repo.ExistsByNumber(ctx, header.DemandNo)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainErrorf("DUPLICATE_KEY", "Issue %s already exists", header.DemandNo)
		}
	}

	if err := is.Apply(header, rows); err != nil {
		return nil, err
	}

	claims := is.Consumptions()
	err = s.engine.Reconcile(ctx, s.link(), claims, is.ID, func(ctx context.Context) error {
		if err := s.repo.Save(ctx, is); err != nil {
			return err
		}
		return s.consumptions.ReplaceForDocument(ctx, procurement.LinkGRNToIssue, is.ID, claims)
	})
	if err != nil {
		return nil, err
	}
	return toIssueResponse(is), nil
}

// Delete removes the issue document only; its consumption records stay
// behind, so the receipt capacity it claimed is not re-opened, and issue
// returns against it are untouched.
func (s *IssueService) Delete(ctx context.Context, actor Actor, demandNo string) error {
	is, err := s.repo.FindByNumber(ctx, demandNo)
	if err != nil {
		return err
	}
	if !canDelete(actor, is.CreatedBy) {
		return shared.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, is.ID); err != nil {
		return err
	}
	s.logger.Info("issue deleted",
		zap.String("demandNo", demandNo),
		zap.String("deletedBy", actor.ID.String()))
	return nil
}
