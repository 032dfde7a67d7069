package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"email_address": true,
	"role":          true,
	"status":        true,
}

// RequisitionSortFields contains allowed sort fields for requisitions
var RequisitionSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"dr_number":        true,
	"date":             true,
	"department":       true,
	"requisition_type": true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"po_number":  true,
	"date":       true,
	"supplier":   true,
	"store":      true,
}

// GRNSortFields contains allowed sort fields for goods receipt notes
var GRNSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"grn_number":    true,
	"date":          true,
	"supplier":      true,
	"inward_number": true,
}

// GRNReturnSortFields contains allowed sort fields for GRN returns
var GRNReturnSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"grnr_number": true,
	"grnr_date":   true,
	"grn_number":  true,
}

// IssueSortFields contains allowed sort fields for issues
var IssueSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"issue_number":        true,
	"demand_no":           true,
	"issue_date":          true,
	"grn_number":          true,
	"issue_to_department": true,
}

// IssueReturnSortFields contains allowed sort fields for issue returns
var IssueReturnSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"ir_number":  true,
	"ir_date":    true,
	"dr_number":  true,
}
