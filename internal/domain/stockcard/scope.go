package stockcard

import (
	"context"

	"stockcard/internal/core/id"
	"stockcard/internal/domain/catalogs/location"
)

// ScopeResolver turns a root location into the flat set of locations
// the ledger counts as "inside": the root plus all its descendants.
type ScopeResolver struct {
	locations location.Repository
}

// NewScopeResolver creates a resolver over the location catalog.
func NewScopeResolver(locations location.Repository) *ScopeResolver {
	return &ScopeResolver{locations: locations}
}

// Resolve returns the scope for the given root. The root itself is
// always a member; a leaf root yields a singleton set. A missing root
// is a data integrity problem and surfaces as a not-found error,
// never as a silent empty set.
func (r *ScopeResolver) Resolve(ctx context.Context, rootID id.ID) (LocationSet, error) {
	ids, err := r.locations.DescendantIDs(ctx, rootID)
	if err != nil {
		return nil, err
	}

	set := NewLocationSet(ids...)
	// DescendantIDs includes the root, but keep the invariant explicit.
	set[rootID] = struct{}{}

	return set, nil
}
