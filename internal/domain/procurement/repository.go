package procurement

import (
	"context"

	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ConsumedQuantities maps item name to the summed quantity already consumed
// from one upstream document by existing downstream documents.
type ConsumedQuantities map[string]decimal.Decimal

// RequisitionRepository persists requisitions
type RequisitionRepository interface {
	shared.Repository[Requisition]
	FindByNumber(ctx context.Context, drNumber string) (*Requisition, error)
	ExistsByNumber(ctx context.Context, drNumber string) (bool, error)
}

// PurchaseOrderRepository persists purchase orders
type PurchaseOrderRepository interface {
	shared.Repository[PurchaseOrder]
	FindByNumber(ctx context.Context, poNumber string) (*PurchaseOrder, error)
	ExistsByNumber(ctx context.Context, poNumber string) (bool, error)
}

// GRNRepository persists goods receipt notes
type GRNRepository interface {
	shared.Repository[GRN]
	FindByNumber(ctx context.Context, grnNumber string) (*GRN, error)
	ExistsByNumber(ctx context.Context, grnNumber string) (bool, error)
}

// GRNReturnRepository persists GRN returns
type GRNReturnRepository interface {
	shared.Repository[GRNReturn]
	FindByNumber(ctx context.Context, grnrNumber string) (*GRNReturn, error)
	ExistsByNumber(ctx context.Context, grnrNumber string) (bool, error)
}

// IssueRepository persists issues, addressed by demand number
type IssueRepository interface {
	shared.Repository[Issue]
	FindByNumber(ctx context.Context, demandNo string) (*Issue, error)
	ExistsByNumber(ctx context.Context, demandNo string) (bool, error)
}

// IssueReturnRepository persists issue returns
type IssueReturnRepository interface {
	shared.Repository[IssueReturn]
	FindByNumber(ctx context.Context, irNumber string) (*IssueReturn, error)
	ExistsByNumber(ctx context.Context, irNumber string) (bool, error)
}
