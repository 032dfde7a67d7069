package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Chain links whose consumption is recorded against upstream capacity
const (
	LinkPOToGRN          = "po-grn"
	LinkGRNToGRNReturn   = "grn-grnreturn"
	LinkGRNToIssue       = "grn-issue"
	LinkIssueToIssueRtrn = "issue-issuereturn"
)

// ConsumptionRecord is one downstream document's persisted claim against an
// upstream line. Records are replaced wholesale when the claiming document
// is written and deliberately survive its deletion: removing a document does
// not re-open the capacity it consumed.
type ConsumptionRecord struct {
	ID          uuid.UUID
	Link        string
	DocumentID  uuid.UUID
	UpstreamKey string
	Item        string
	Quantity    decimal.Decimal
}

// ConsumptionRepository persists consumption records
type ConsumptionRepository interface {
	// ReplaceForDocument swaps the document's records on one link for the
	// given claims.
	ReplaceForDocument(ctx context.Context, link string, documentID uuid.UUID, claims []Consumption) error
	// SumByUpstream totals recorded quantities per item against one
	// upstream key, excluding the document identified by excludeID so a
	// document under edit does not count its own prior contribution.
	SumByUpstream(ctx context.Context, link, upstreamKey string, excludeID uuid.UUID) (ConsumedQuantities, error)
}
