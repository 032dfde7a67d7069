package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procure/backend/internal/domain/procurement"
	"github.com/procure/backend/internal/domain/shared"
)

func TestMemStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewRequisitionStore()
	owner := uuid.New()

	req, err := procurement.NewRequisition(owner,
		procurement.RequisitionHeader{
			DRNumber:        "DR-1",
			Date:            mustDate(t, "05-01-2026"),
			Department:      "Mechanical",
			RequisitionType: "Capital",
		},
		[]procurement.RequisitionItem{
			{
				Level3ItemCategory: "Bearings",
				ItemName:           "Bearing 6204",
				UOM:                "Nos",
				Quantity:           decimal.NewFromInt(4),
				Rate:               decimal.NewFromInt(120),
				Amount:             decimal.NewFromInt(480),
			},
		})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, req))

	found, err := store.FindByNumber(ctx, "DR-1")
	require.NoError(t, err)
	assert.Equal(t, req.ID, found.ID)

	exists, err := store.ExistsByNumber(ctx, "DR-1")
	require.NoError(t, err)
	assert.True(t, exists)

	filter := shared.DefaultFilter().OwnedBy(owner)
	items, err := store.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	other := shared.DefaultFilter().OwnedBy(uuid.New())
	items, err = store.FindAll(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.NoError(t, store.Delete(ctx, req.ID))
	_, err = store.FindByID(ctx, req.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestMemConsumptionStoreReplaceAndSum(t *testing.T) {
	ctx := context.Background()
	store := NewMemConsumptionStore()
	docA := uuid.New()
	docB := uuid.New()

	require.NoError(t, store.ReplaceForDocument(ctx, procurement.LinkPOToGRN, docA, []procurement.Consumption{
		{UpstreamKey: "PO-1", Item: "Bearing 6204", Quantity: decimal.NewFromInt(6)},
	}))
	require.NoError(t, store.ReplaceForDocument(ctx, procurement.LinkPOToGRN, docB, []procurement.Consumption{
		{UpstreamKey: "PO-1", Item: "Bearing 6204", Quantity: decimal.NewFromInt(3)},
	}))

	sums, err := store.SumByUpstream(ctx, procurement.LinkPOToGRN, "PO-1", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, sums["Bearing 6204"].Equal(decimal.NewFromInt(9)))

	// A document under edit does not count its own prior claim.
	sums, err = store.SumByUpstream(ctx, procurement.LinkPOToGRN, "PO-1", docA)
	require.NoError(t, err)
	assert.True(t, sums["Bearing 6204"].Equal(decimal.NewFromInt(3)))

	// Replacing swaps the old claims wholesale.
	require.NoError(t, store.ReplaceForDocument(ctx, procurement.LinkPOToGRN, docA, []procurement.Consumption{
		{UpstreamKey: "PO-1", Item: "Bearing 6204", Quantity: decimal.NewFromInt(1)},
	}))
	sums, err = store.SumByUpstream(ctx, procurement.LinkPOToGRN, "PO-1", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, sums["Bearing 6204"].Equal(decimal.NewFromInt(4)))
}

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := shared.ParseDocDate(value)
	require.NoError(t, err)
	return parsed
}
