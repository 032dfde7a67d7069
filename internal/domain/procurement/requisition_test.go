package procurement

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/procure/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequisitionHeader() RequisitionHeader {
	return RequisitionHeader{
		DRNumber:        "DR-001",
		Date:            time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Department:      "Stores",
		RequisitionType: "Regular",
	}
}

func validRequisitionItem() RequisitionItem {
	return RequisitionItem{
		Level3ItemCategory: "Cement",
		ItemName:           "OPC 53",
		UOM:                "Bag",
		Quantity:           decimal.NewFromInt(100),
		Rate:               decimal.NewFromInt(350),
	}
}

func TestNewRequisition(t *testing.T) {
	t.Run("valid requisition", func(t *testing.T) {
		owner := uuid.New()
		r, err := NewRequisition(owner, validRequisitionHeader(), []RequisitionItem{validRequisitionItem()})
		require.NoError(t, err)
		assert.Equal(t, "DR-001", r.Number())
		assert.Equal(t, owner, r.CreatedBy)
		assert.NotEqual(t, uuid.Nil, r.ID)
	})

	t.Run("missing department", func(t *testing.T) {
		header := validRequisitionHeader()
		header.Department = ""
		_, err := NewRequisition(uuid.New(), header, []RequisitionItem{validRequisitionItem()})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MISSING_FIELD", domainErr.Code)
	})

	t.Run("missing date", func(t *testing.T) {
		header := validRequisitionHeader()
		header.Date = time.Time{}
		_, err := NewRequisition(uuid.New(), header, []RequisitionItem{validRequisitionItem()})
		require.Error(t, err)
	})

	t.Run("drNumber too long", func(t *testing.T) {
		header := validRequisitionHeader()
		header.DRNumber = "DR-12345678"
		_, err := NewRequisition(uuid.New(), header, []RequisitionItem{validRequisitionItem()})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_FORMAT", domainErr.Code)
	})

	t.Run("remark over limit", func(t *testing.T) {
		header := validRequisitionHeader()
		header.HeaderRemarks = strings.Repeat("x", MaxRemarkLength+1)
		_, err := NewRequisition(uuid.New(), header, []RequisitionItem{validRequisitionItem()})
		require.Error(t, err)
	})

	t.Run("remark at limit is accepted", func(t *testing.T) {
		header := validRequisitionHeader()
		header.HeaderRemarks = strings.Repeat("x", MaxRemarkLength)
		_, err := NewRequisition(uuid.New(), header, []RequisitionItem{validRequisitionItem()})
		require.NoError(t, err)
	})

	t.Run("empty items rejected", func(t *testing.T) {
		_, err := NewRequisition(uuid.New(), validRequisitionHeader(), nil)
		require.Error(t, err)
	})

	t.Run("non-positive item quantity rejected", func(t *testing.T) {
		item := validRequisitionItem()
		item.Quantity = decimal.Zero
		_, err := NewRequisition(uuid.New(), validRequisitionHeader(), []RequisitionItem{item})
		require.Error(t, err)
	})
}

func TestRequisitionApply(t *testing.T) {
	r, err := NewRequisition(uuid.New(), validRequisitionHeader(), []RequisitionItem{validRequisitionItem()})
	require.NoError(t, err)
	initialVersion := r.Version

	t.Run("replaces rows wholesale and bumps version", func(t *testing.T) {
		header := validRequisitionHeader()
		header.Department = "Workshop"
		replacement := validRequisitionItem()
		replacement.ItemName = "PPC 43"

		require.NoError(t, r.Apply(header, []RequisitionItem{replacement}))
		assert.Equal(t, "Workshop", r.Department)
		require.Len(t, r.Items, 1)
		assert.Equal(t, "PPC 43", r.Items[0].ItemName)
		assert.Equal(t, initialVersion+1, r.Version)
	})

	t.Run("invalid apply leaves aggregate unchanged", func(t *testing.T) {
		before := r.Version
		header := validRequisitionHeader()
		header.DRNumber = ""
		require.Error(t, r.Apply(header, []RequisitionItem{validRequisitionItem()}))
		assert.Equal(t, before, r.Version)
		assert.Equal(t, "Workshop", r.Department)
	})
}
