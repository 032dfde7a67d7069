package procurement

import (
	"context"
	"testing"

	"github.com/procure/backend/internal/application/reconciliation"
	"github.com/procure/backend/internal/domain/identity"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// chainFixture wires every document service against shared in-memory
// storage so a whole Requisition → PO → GRN → {Return, Issue → Return}
// path can be exercised.
type chainFixture struct {
	requisitions *RequisitionService
	orders       *PurchaseOrderService
	receipts     *GRNService
	grnReturns   *GRNReturnService
	issues       *IssueService
	issueReturns *IssueReturnService
}

func newChainFixture(t *testing.T) *chainFixture {
	t.Helper()
	logger := zap.NewNop()
	engine := reconciliation.NewEngine(logger)
	policy := reconciliation.DefaultChainPolicy()

	poRepo := newPurchaseOrderRepo()
	grnRepo := newGRNRepo()
	issueRepo := newIssueRepo()
	consumptions := newConsumptionRepo()

	return &chainFixture{
		requisitions: NewRequisitionService(newRequisitionRepo(), logger),
		orders:       NewPurchaseOrderService(poRepo, logger),
		receipts:     NewGRNService(grnRepo, poRepo, consumptions, engine, policy, logger),
		grnReturns:   NewGRNReturnService(newGRNReturnRepo(), grnRepo, consumptions, engine, logger),
		issues:       NewIssueService(issueRepo, grnRepo, consumptions, engine, policy, logger),
		issueReturns: NewIssueReturnService(newIssueReturnRepo(), issueRepo, consumptions, engine, logger),
	}
}

func grnReturnRequest(number, grnNumber string, returned int64) GRNReturnRequest {
	return GRNReturnRequest{
		GRNRNumber: number,
		GRNRDate:   "10-04-2024",
		GRNNumber:  grnNumber,
		Rows: []GRNReturnRowInput{{
			Category:  "Cement",
			Name:      "OPC 53",
			Unit:      "Bag",
			ReturnQty: decimal.NewFromInt(returned),
		}},
	}
}

func issueRequest(demandNo, grnNumber string, issued int64) IssueRequest {
	return IssueRequest{
		GRNNumber:         grnNumber,
		IssueDate:         "12-04-2024",
		Store:             "Central",
		RequisitionType:   "Regular",
		IssueToUnit:       "Crusher",
		IssueToDepartment: "Production",
		DemandNo:          demandNo,
		Rows: []IssueRowInput{{
			Level3ItemCategory: "Cement",
			ItemName:           "OPC 53",
			UOM:                "Bag",
			IssueQty:           decimal.NewFromInt(issued),
		}},
	}
}

func issueReturnRequest(number, demandNo string, returned int64) IssueReturnRequest {
	return IssueReturnRequest{
		IRNumber: number,
		IRDate:   "20-04-2024",
		DRNumber: demandNo,
		Rows: []IssueReturnRowInput{{
			Level3ItemCategory: "Cement",
			ItemName:           "OPC 53",
			Unit:               "Bag",
			ReturnQty:          decimal.NewFromInt(returned),
		}},
	}
}

func TestDocumentChain(t *testing.T) {
	ctx := context.Background()
	actor := ownerActor()
	fx := newChainFixture(t)

	_, err := fx.requisitions.Create(ctx, actor, RequisitionRequest{
		DRNumber:        "DR-1",
		Date:            "10-03-2024",
		Department:      "Stores",
		RequisitionType: "Regular",
		Items: []RequisitionItemInput{{
			Level3ItemCategory: "Cement",
			ItemName:           "OPC 53",
			UOM:                "Bag",
			Quantity:           decimal.NewFromInt(100),
		}},
	})
	require.NoError(t, err)

	_, err = fx.orders.Create(ctx, actor, poRequest("PO-1", 100))
	require.NoError(t, err)
	_, err = fx.receipts.Create(ctx, actor, grnRequest("GRN-1", "PO-1", 80))
	require.NoError(t, err)

	t.Run("grn return consumes receipt capacity", func(t *testing.T) {
		_, err := fx.grnReturns.Create(ctx, actor, grnReturnRequest("GRNR-1", "GRN-1", 30))
		require.NoError(t, err)
	})

	t.Run("issue shares the same receipt capacity pool as its own link", func(t *testing.T) {
		// the 80 received units cap the issue link independently of returns
		_, err := fx.issues.Create(ctx, actor, issueRequest("DM-1", "GRN-1", 60))
		require.NoError(t, err)

		_, err = fx.issues.Create(ctx, actor, issueRequest("DM-2", "GRN-1", 30))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "QUANTITY_EXCEEDED", domainErr.Code)
	})

	t.Run("issue return resolves the issue by demand number", func(t *testing.T) {
		_, err := fx.issueReturns.Create(ctx, actor, issueReturnRequest("IR-1", "DM-1", 20))
		require.NoError(t, err)

		_, err = fx.issueReturns.Create(ctx, actor, issueReturnRequest("IR-2", "DM-1", 50))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "QUANTITY_EXCEEDED", domainErr.Code)
	})

	t.Run("issue return against unknown demand", func(t *testing.T) {
		_, err := fx.issueReturns.Create(ctx, actor, issueReturnRequest("IR-3", "DM-missing", 1))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})

	t.Run("grn return beyond received quantity", func(t *testing.T) {
		_, err := fx.grnReturns.Create(ctx, actor, grnReturnRequest("GRNR-2", "GRN-1", 60))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "QUANTITY_EXCEEDED", domainErr.Code)
	})
}

func TestDeletePermissions(t *testing.T) {
	ctx := context.Background()
	owner := ownerActor()
	other := ownerActor()
	admin := adminActor()
	secondary := Actor{ID: other.ID, Role: identity.RoleSecondaryAdmin}
	fx := newChainFixture(t)

	mkReq := func(t *testing.T, number string) {
		t.Helper()
		_, err := fx.requisitions.Create(ctx, owner, RequisitionRequest{
			DRNumber:        number,
			Date:            "10-03-2024",
			Department:      "Stores",
			RequisitionType: "Regular",
			Items: []RequisitionItemInput{{
				Level3ItemCategory: "Cement",
				ItemName:           "OPC 53",
				UOM:                "Bag",
				Quantity:           decimal.NewFromInt(10),
			}},
		})
		require.NoError(t, err)
	}

	t.Run("owner deletes own record", func(t *testing.T) {
		mkReq(t, "DR-10")
		require.NoError(t, fx.requisitions.Delete(ctx, owner, "DR-10"))
	})

	t.Run("other owner cannot delete", func(t *testing.T) {
		mkReq(t, "DR-11")
		err := fx.requisitions.Delete(ctx, other, "DR-11")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})

	t.Run("admin deletes any record", func(t *testing.T) {
		require.NoError(t, fx.requisitions.Delete(ctx, admin, "DR-11"))
	})

	t.Run("secondary admin deletes nothing", func(t *testing.T) {
		mkReq(t, "DR-12")
		err := fx.requisitions.Delete(ctx, secondary, "DR-12")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNAUTHORIZED", domainErr.Code)
	})
}
