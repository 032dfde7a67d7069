package procurement

import (
	"context"

	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PurchaseOrderService handles purchase order operations. A purchase order's
// requisition references are informational; no quantity is consumed until
// goods are received, so these operations bypass the reconciliation engine.
type PurchaseOrderService struct {
	repo   procurement.PurchaseOrderRepository
	logger *zap.Logger
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(repo procurement.PurchaseOrderRepository, logger *zap.Logger) *PurchaseOrderService {
	return &PurchaseOrderService{repo: repo, logger: logger}
}

// Create stores a new purchase order owned by the actor
func (s *PurchaseOrderService) Create(ctx context.Context, actor Actor, req PurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	header, rows, err := req.toDomain()
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByNumber(ctx, header.PONumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainErrorf("DUPLICATE_KEY", "Purchase order %s already exists", header.PONumber)
	}

	po, err := procurement.NewPurchaseOrder(actor.ID, header, rows)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, po); err != nil {
		return nil, err
	}

	s.logger.Info("purchase order created",
		zap.String("poNumber", po.PONumber),
		zap.String("createdBy", actor.ID.String()))
	return toPurchaseOrderResponse(po), nil
}

// List returns the purchase orders visible to the actor, newest first
func (s *PurchaseOrderService) List(ctx context.Context, actor Actor, filter shared.Filter) (*shared.Paginated[PurchaseOrderResponse], error) {
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

	responses := make([]PurchaseOrderResponse, 0, len(items))
	for i := range items {
		responses = append(responses, *toPurchaseOrderResponse(&items[i]))
	}
	page := shared.NewPaginated(responses, total, scoped.Page, scoped.PageSize)
	return &page, nil
}

// Search lists purchase orders whose number contains the query,
// case-insensitively, within the actor's visibility scope.
func (s *PurchaseOrderService) Search(ctx context.Context, actor Actor, query string, filter shared.Filter) (*shared.Paginated[PurchaseOrderResponse], error) {
	filter.Search = query
	return s.List(ctx, actor, filter)
}

// Get returns one purchase order by its number
func (s *PurchaseOrderService) Get(ctx context.Context, actor Actor, poNumber string) (*PurchaseOrderResponse, error) {
	po, err := s.repo.FindByNumber(ctx, poNumber)
	if err != nil {
		return nil, err
	}
	if !canRead(actor, po.CreatedBy) {
		return nil, shared.ErrNotFound
	}
	return toPurchaseOrderResponse(po), nil
}

// Update replaces the purchase order's header and rows wholesale. Reducing
// a row's quantity below what receipts have already consumed is not checked
// here; the check belongs to the consuming edge and only runs when receipts
// are written.
func (s *PurchaseOrderService) Update(ctx context.Context, actor Actor, poNumber string, req PurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	po, err := s.repo.FindByNumber(ctx, poNumber)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, po.CreatedBy) {
		return nil, shared.ErrUnauthorized
	}

	header, rows, err := req.toDomain()
	if err != nil {
		return nil, err
	}
	if header.PONumber != po.PONumber {
		exists, err := s.repo.ExistsByNumber(ctx, header.PONumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainErrorf("DUPLICATE_KEY", "Purchase order %s already exists", header.PONumber)
		}
	}

	if err := po.Apply(header, rows); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, po); err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(po), nil
}

// Delete removes the purchase order without touching the receipts that
// consumed it. Downstream documents keep their rows and become orphaned.
func (s *PurchaseOrderService) Delete(ctx context.Context, actor Actor, poNumber string) error {
	po, err := s.repo.FindByNumber(ctx, poNumber)
	if err != nil {
		return err
	}
	if !canDelete(actor, po.CreatedBy) {
		return shared.ErrUnauthorized
	}

	if err := s.repo.Delete(ctx, po.ID); err != nil {
		return err
	}
	s.logger.Info("purchase order deleted",
		zap.String("poNumber", poNumber),
		zap.String("deletedBy", actor.ID.String()))
	return nil
}
