package reconciliation

// ChainPolicy controls whether the optional upstream references of the chain
// must be present. GRN returns and issue returns always carry a mandatory
// header reference, so only the GRN→PO and Issue→GRN edges are toggles.
type ChainPolicy struct {
	GRNRequiresPO    bool
	IssueRequiresGRN bool
}

// DefaultChainPolicy requires every upstream reference
func DefaultChainPolicy() ChainPolicy {
	return ChainPolicy{
		GRNRequiresPO:    true,
		IssueRequiresGRN: true,
	}
}
