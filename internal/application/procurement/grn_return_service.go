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

// GRNReturnService handles GRN return operations. Returned quantities
// consume the referenced receipt's capacity through the reconciliation
// engine; the GRN reference is always mandatory.
type GRNReturnService struct {
	repo         procurement.GRNReturnRepository
	grnRepo      procurement.GRNRepository
	consumptions procurement.ConsumptionRepository
	engine       *reconciliation.Engine
	logger       *zap.Logger
}

// NewGRNReturnService creates a new GRNReturnService
func NewGRNReturnService(
	repo procurement.GRNReturnRepository,
	grnRepo procurement.GRNRepository,
	consumptions procurement.ConsumptionRepository,
	engine *reconciliation.Engine,
	logger *zap.Logger,
) *GRNReturnService {
	return &GRNReturnService{
		repo:         repo,
		grnRepo:      grnRepo,
		consumptions: consumptions,
		engine:       engine,
		logger:       logger,
	}
}

func (s *GRNReturnService) link() reconciliation.Link {
	return reconciliation.Link{
		Name: procurement.LinkGRNToGRNReturn,
		ResolveCapacity: func(ctx context.Context, grnNumber string) (map[string]decimal.Decimal, error) {
			g, err := s.grnRepo.FindByNumber(ctx, grnNumber)
			if err != nil {
				return nil, shared.NewDomainErrorf("NOT_FOUND", "GRN %s not found", grnNumber)
			}
			return reconciliation.CapacityByItem(g.CapacityLines()), nil
		},
		SumConsumed: func(ctx context.Context, grnNumber string, excludeID uuid.UUID) (procurement.ConsumedQuantities, error) {
			return s.consumptions.SumByUpstream(ctx, procurement.LinkGRNToGRNReturn, grnNumber, excludeID)
		},
	}
}

// Create validates the return against the receipt's capacity and stores it
func (s *GRNReturnService) Create(ctx context.Context, actor Actor, req GRNReturnRequest) (*GRNReturnResponse, error) {
	header, rows, err := req.toDomain()
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByNumber(ctx, header.GRNRNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf("DUPLICATE_KEY", "GRN return %s already exists", header.GRNRNumber)
	}

	gr, err := procurement.NewGRNReturn(actor.ID, header, rows)
	if err != nil {
		return nil, err
	}

	claims := gr.Consumptions()
	err = s.engine.Reconcile(ctx, s.link(), claims, uuid.Nil, func(ctx context.Context) error {
		if err := s.repo.Save(ctx, gr); err != nil {
			return err
		}
		return s.consumptions.ReplaceForDocument(ctx, procurement.LinkGRNToGRNReturn, gr.ID, claims)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("grn return created",
		zap.String("grnrNumber", gr.GRNRNumber),
		zap.String("createdBy", actor.ID.String()))
	return toGRNReturnResponse(gr), nil
}

// List returns the GRN returns visible to the actor, newest first
func (s *GRNReturnService) List(ctx context.Context, actor Actor, filter shared.Filter) (*shared.Paginated[GRNReturnResponse], error) {
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

	responses := make([]GRNReturnResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *toGRNReturnResponse(&items[i]))
	}
	page := shared.NewPaginated(responses, total, scoped.Page, scoped.PageSize)
	return &page, nil
}

// Search lists GRN returns whose number contains the query,
// case-insensitively, within the actor's visibility scope.
func (s *GRNReturnService) Search(ctx context.Context, actor Actor, query string, filter shared.Filter) (*shared.Paginated[GRNReturnResponse], error) {
	filter.Search = query
	return s.List(ctx, actor, filter)
}

// Get returns one GRN return by its number
func (s *GRNReturnService) Get(ctx context.Context, actor Actor, grnrNumber string) (*GRNReturnResponse, error) {
	gr, err := s.repo.FindByNumber(ctx, grnrNumber)
	if err != nil {
		return nil, err
	}
	if !canRead(actor, gr.CreatedBy) {
		return nil, shared.ErrNotFound
	}
	return toGRNReturnResponse(gr), nil
}

// Update replaces the return wholesale and re-reconciles, excluding the
// stored rows of the return under edit from the sibling sum.
func (s *GRNReturnService) Update(ctx context.Context, actor Actor, grnrNumber string, req GRNReturnRequest) (*GRNReturnResponse, error) {
	gr, err := s.repo.FindByNumber(ctx, grnrNumber)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, gr.CreatedBy) {
		return nil, shared.ErrUnauthorized
	}

	header, rows, err := req.toDomain()
	if err != nil {
		return nil, err
	}
	if header.GRNRNumber != gr.GRNRNumber {
		exists, err := s.repo.ExistsByNumber(ctx, header.GRNRNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainErrorf("DUPLICATE_KEY", "GRN return %s already exists", header.GRNRNumber)
		}
	}

	if err := gr.Apply(header, rows); err != nil {
		return nil, err
	}

	claims := gr.Consumptions()
	err = s.engine.Reconcile(ctx, s.link(), claims, gr.ID, func(ctx context.Context) error {
		if err := s.repo.Save(ctx, gr); err != nil {
			return err
		}
		return s.consumptions.ReplaceForDocument(ctx, procurement.LinkGRNToGRNReturn, gr.ID, claims)
	})
	if err != nil {
		return nil, err
	}
	return toGRNReturnResponse(gr), nil
}

// Delete removes the return document only; its consumption records stay
// behind, so the receipt capacity it claimed is not re-opened.
func (s *GRNReturnService) Delete(ctx context.Context, actor Actor, grnrNumber string) error {
	gr, err := s.repo.FindByNumber(ctx, grnrNumber)
	if err != nil {
		return err
	}
	if !canDelete(actor, gr.CreatedBy) {
		return shared.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, gr.ID); err != nil {
		return err
	}
	s.logger.Info("grn return deleted",
		zap.String("grnrNumber", grnrNumber),
		zap.String("deletedBy", actor.ID.String()))
	return nil
}
