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

// GRNService handles goods receipt operations. Received quantities consume
// purchase order capacity through the reconciliation engine.
type GRNService struct {
	repo         procurement.GRNRepository
	poRepo       procurement.PurchaseOrderRepository
	consumptions procurement.ConsumptionRepository
	engine       *reconciliation.Engine
	policy       reconciliation.ChainPolicy
	logger       *zap.Logger
}

// NewGRNService creates a new GRNService
func NewGRNService(
	repo procurement.GRNRepository,
	poRepo procurement.PurchaseOrderRepository,
	consumptions procurement.ConsumptionRepository,
	engine *reconciliation.Engine,
	policy reconciliation.ChainPolicy,
	logger *zap.Logger,
) *GRNService {
	return &GRNService{
		repo:         repo,
		poRepo:       poRepo,
		consumptions: consumptions,
		engine:       engine,
		policy:       policy,
		logger:       logger,
	}
}

func (s *GRNService) link() reconciliation.Link {
	return reconciliation.Link{
		Name: procurement.LinkPOToGRN,
		ResolveCapacity: func(ctx context.Context, poNumber string) (map[string]decimal.Decimal, error) {
			po, err := s.poRepo.FindByNumber(ctx, poNumber)
			if err != nil {
				return nil, shared.NewDomainErrorf("NOT_FOUND", "Purchase order %s not found", poNumber)
			}
			return reconciliation.CapacityByItem(po.CapacityLines()), nil
		},
		SumConsumed: func(ctx context.Context, poNumber string, excludeID uuid.UUID) (procurement.ConsumedQuantities, error) {
			return s.consumptions.SumByUpstream(ctx, procurement.LinkPOToGRN, poNumber, excludeID)
		},
	}
}

func (s *GRNService) checkPolicy(rows []procurement.GRNRow) error {
	if !s.policy.GRNRequiresPO {
		return nil
	}
	for _, row := range rows {
		if row.PONo == "" {
			return shared.NewDomainError("MISSING_FIELD", "poNo is required on every row")
		}
	}
	return nil
}

// Create validates the receipt against purchase order capacity and stores it
func (s *GRNService) Create(ctx context.Context, actor Actor, req GRNRequest) (*GRNResponse, error) {
	header, rows, err := req.toDomain()
	if err != nil {
		return nil, err
	}
	if err := s.checkPolicy(rows); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByNumber(ctx, header.GRNNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf("DUPLICATE_KEY", "GRN %s already exists", header.GRNNumber)
	}

	g, err := procurement.NewGRN(actor.ID, header, rows)
	if err != nil {
		return nil, err
	}

	claims := g.Consumptions()
	err = s.engine.Reconcile(ctx, s.link(), claims, uuid.Nil, func(ctx context.Context) error {
		if err := s.repo.Save(ctx, g); err != nil {
			return err
		}
		return s.consumptions.ReplaceForDocument(ctx, procurement.LinkPOToGRN, g.ID, claims)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("grn created",
		zap.String("grnNumber", g.GRNNumber),
		zap.String("createdBy", actor.ID.String()))
	return toGRNResponse(g), nil
}

// List returns the receipts visible to the actor, newest first
func (s *GRNService) List(ctx context.Context, actor Actor, filter shared.Filter) (*shared.Paginated[GRNResponse], error) {
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

	responses := make([]GRNResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *toGRNResponse(&items[i]))
	}
	page := shared.NewPaginated(responses, total, scoped.Page, scoped.PageSize)
	return &page, nil
}

// Search lists receipts whose number contains the query, case-insensitively,
// within the actor's visibility scope.
func (s *GRNService) Search(ctx context.Context, actor Actor, query string, filter shared.Filter) (*shared.Paginated[GRNResponse], error) {
	filter.Search = query
	return s.List(ctx, actor, filter)
}

// Get returns one receipt by its number
func (s *GRNService) Get(ctx context.Context, actor Actor, grnNumber string) (*GRNResponse, error) {
	g, err := s.repo.FindByNumber(ctx, grnNumber)
	if err != nil {
		return nil, err
	}
	if !canRead(actor, g.CreatedBy) {
		return nil, shared.ErrNotFound
	}
	return toGRNResponse(g), nil
}

// Update replaces the receipt wholesale and re-reconciles. The stored rows
// of the receipt under edit are excluded from the sibling sum so an update
// competes only against other receipts.
func (s *GRNService) Update(ctx context.Context, actor Actor, grnNumber string, req GRNRequest) (*GRNResponse, error) {
	g, err := s.repo.FindByNumber(ctx, grnNumber)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, g.CreatedBy) {
		return nil, shared.ErrUnauthorized
	}

	header, rows, err := req.toDomain()
	if err != nil {
		return nil, err
	}
	if err := s.checkPolicy(rows); err != nil {
		return nil, err
	}
	if header.GRNNumber != g.GRNNumber {
		exists, err := s.repo.ExistsByNumber(ctx, header.GRNNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainErrorf("DUPLICATE_KEY", "GRN %s already exists", header.GRNNumber)
		}
	}

	if err := g.Apply(header, rows); err != nil {
		return nil, err
	}

	claims := g.Consumptions()
	err = s.engine.Reconcile(ctx, s.link(), claims, g.ID, func(ctx context.Context) error {
		if err := s.repo.Save(ctx, g); err != nil {
			return err
		}
		return s.consumptions.ReplaceForDocument(ctx, procurement.LinkPOToGRN, g.ID, claims)
	})
	if err != nil {
		return nil, err
	}
	return toGRNResponse(g), nil
}

// Delete removes the receipt document only. Its consumption records stay
// behind, so the purchase order capacity it claimed is not re-opened for
// future receipts, and downstream returns or issues are untouched.
func (s *GRNService) Delete(ctx context.Context, actor Actor, grnNumber string) error {
	g, err := s.repo.FindByNumber(ctx, grnNumber)
	if err != nil {
		return err
	}
	if !canDelete(actor, g.CreatedBy) {
		return shared.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, g.ID); err != nil {
		return err
	}
	s.logger.Info("grn deleted",
		zap.String("grnNumber", grnNumber),
		zap.String("deletedBy", actor.ID.String()))
	return nil
}
